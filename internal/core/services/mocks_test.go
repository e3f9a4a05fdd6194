package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

type MockStoreRepo struct {
	mock.Mock
}

func (m *MockStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	return m.Called(ctx, store).Error(0)
}

func (m *MockStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepo) ListByMerchantID(ctx context.Context, merchantID string) ([]*domain.Store, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Store), args.Error(1)
}

func (m *MockStoreRepo) ListByIDs(ctx context.Context, merchantID string, ids []string) ([]*domain.Store, error) {
	args := m.Called(ctx, merchantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Store), args.Error(1)
}

func (m *MockStoreRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockMetricSource struct {
	mock.Mock
}

func (m *MockMetricSource) FetchSnapshot(ctx context.Context, metric domain.Metric, payload domain.StorePayload) (domain.MetricSnapshot, error) {
	args := m.Called(ctx, metric, payload)
	return args.Get(0).(domain.MetricSnapshot), args.Error(1)
}

func (m *MockMetricSource) FetchDailySeries(ctx context.Context, metric domain.Metric, payload domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	args := m.Called(ctx, metric, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSeriesPoint), args.Error(1)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(storeID string) {
	m.Called(storeID)
}

// forStore matches any payload addressed to storeID.
func forStore(storeID string) interface{} {
	return mock.MatchedBy(func(p domain.StorePayload) bool {
		return p.StoreID == storeID
	})
}
