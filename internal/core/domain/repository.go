package domain

import (
	"context"
	"errors"
)

var (
	ErrStoreNotFound = errors.New("store not found")
)

type StoreRepository interface {
	// Create persists a newly connected store.
	Create(ctx context.Context, store *Store) error

	// GetByID retrieves a store by its unique identifier.
	GetByID(ctx context.Context, id string) (*Store, error)

	// ListByMerchantID retrieves every store connected by a merchant.
	ListByMerchantID(ctx context.Context, merchantID string) ([]*Store, error)

	// ListByIDs retrieves the subset of ids that belong to the merchant.
	// Unknown or foreign ids are silently absent from the result.
	ListByIDs(ctx context.Context, merchantID string, ids []string) ([]*Store, error)

	// Delete disconnects a store.
	Delete(ctx context.Context, id string) error
}
