package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStoreNameEmpty         = errors.New("store name cannot be empty")
	ErrStoreNameTooLong       = errors.New("store name is too long (max 100 chars)")
	ErrStoreInvalidMerchantID = errors.New("invalid merchant id")
	ErrInvalidMarketplace     = errors.New("invalid marketplace id")
)

const MaxStoreNameLen = 100

// Store is a marketplace shop a merchant connected to the dashboard.
type Store struct {
	ID            string    `json:"id" db:"id"`
	MerchantID    string    `json:"merchant_id" db:"merchant_id"`
	MarketplaceID string    `json:"marketplace_id" db:"marketplace_id"`
	Name          string    `json:"name" db:"name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

func NewStore(merchantID, marketplaceID, name string) (*Store, error) {
	if strings.TrimSpace(merchantID) == "" {
		return nil, ErrStoreInvalidMerchantID
	}

	cleanMarketplace := strings.TrimSpace(marketplaceID)
	if cleanMarketplace == "" {
		return nil, ErrInvalidMarketplace
	}

	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return nil, ErrStoreNameEmpty
	}
	if len(cleanName) > MaxStoreNameLen {
		return nil, ErrStoreNameTooLong
	}

	now := time.Now().UTC()

	return &Store{
		ID:            uuid.New().String(),
		MerchantID:    merchantID,
		MarketplaceID: cleanMarketplace,
		Name:          cleanName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// StorePayload is the request body the metrics backend expects for one store.
type StorePayload struct {
	StoreID       string `json:"store_id"`
	MarketplaceID string `json:"marketplace_id"`
	DateFrom      string `json:"date_from"`
	DateTo        string `json:"date_to"`
}

func NewStorePayload(s *Store, r DateRange) StorePayload {
	return StorePayload{
		StoreID:       s.ID,
		MarketplaceID: s.MarketplaceID,
		DateFrom:      r.Start.String(),
		DateTo:        r.End.String(),
	}
}
