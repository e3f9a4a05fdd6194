package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

// InvalidationQueue schedules the removal of a store's memoized responses.
type InvalidationQueue interface {
	Enqueue(storeID string)
}

type StoreService struct {
	repo        domain.StoreRepository
	invalidator InvalidationQueue
}

func NewStoreService(repo domain.StoreRepository, invalidator InvalidationQueue) *StoreService {
	return &StoreService{
		repo:        repo,
		invalidator: invalidator,
	}
}

type ConnectStoreInput struct {
	MerchantID    string
	MarketplaceID string
	Name          string
}

func (s *StoreService) Connect(ctx context.Context, input ConnectStoreInput) (*domain.Store, error) {
	store, err := domain.NewStore(input.MerchantID, input.MarketplaceID, input.Name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to save store: %w", err)
	}

	return store, nil
}

func (s *StoreService) ListByMerchantID(ctx context.Context, merchantID string) ([]*domain.Store, error) {
	return s.repo.ListByMerchantID(ctx, merchantID)
}

// Get hides stores of other merchants behind ErrStoreNotFound.
func (s *StoreService) Get(ctx context.Context, id, merchantID string) (*domain.Store, error) {
	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.MerchantID != merchantID {
		return nil, domain.ErrStoreNotFound
	}
	return store, nil
}

func (s *StoreService) Disconnect(ctx context.Context, id, merchantID string) error {
	if _, err := s.Get(ctx, id, merchantID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.invalidator != nil {
		s.invalidator.Enqueue(id)
	}
	return nil
}
