package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

var _ domain.StoreRepository = (*InMemoryStoreRepository)(nil)

// InMemoryStoreRepository backs local runs and end-to-end tests.
type InMemoryStoreRepository struct {
	store map[string]*domain.Store

	mu sync.RWMutex
}

func NewInMemoryStoreRepository() *InMemoryStoreRepository {
	return &InMemoryStoreRepository{
		store: make(map[string]*domain.Store),
	}
}

func (r *InMemoryStoreRepository) Create(ctx context.Context, s *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *s
	r.store[s.ID] = &clone
	return nil
}

func (r *InMemoryStoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *InMemoryStoreRepository) ListByMerchantID(ctx context.Context, merchantID string) ([]*domain.Store, error) {
	return r.filter(func(s *domain.Store) bool {
		return s.MerchantID == merchantID
	}), nil
}

func (r *InMemoryStoreRepository) ListByIDs(ctx context.Context, merchantID string, ids []string) ([]*domain.Store, error) {
	return r.filter(func(s *domain.Store) bool {
		return s.MerchantID == merchantID && slices.Contains(ids, s.ID)
	}), nil
}

func (r *InMemoryStoreRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemoryStoreRepository) filter(keep func(*domain.Store) bool) []*domain.Store {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores := []*domain.Store{}
	for _, s := range r.store {
		if keep(s) {
			clone := *s
			stores = append(stores, &clone)
		}
	}

	sort.Slice(stores, func(i, j int) bool {
		if stores[i].CreatedAt.Equal(stores[j].CreatedAt) {
			return stores[i].ID < stores[j].ID
		}
		return stores[i].CreatedAt.Before(stores[j].CreatedAt)
	})
	return stores
}
