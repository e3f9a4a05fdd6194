package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
)

const testMerchant = "merchant-1"

// stubSource answers every snapshot with 100 vs 50 and every daily series
// with 10 on the first day and 20 on the last day of the payload range.
type stubSource struct {
	failing map[string]bool
}

func (s *stubSource) FetchSnapshot(_ context.Context, _ domain.Metric, payload domain.StorePayload) (domain.MetricSnapshot, error) {
	if s.failing[payload.StoreID] {
		return domain.MetricSnapshot{}, errors.New("upstream unavailable")
	}
	return domain.MetricSnapshot{
		Current:        100,
		Previous:       50,
		PercentChange:  100,
		TrendDirection: domain.TrendUp,
		Sparkline:      []domain.TimeSeriesPoint{},
	}, nil
}

func (s *stubSource) FetchDailySeries(_ context.Context, _ domain.Metric, payload domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	if s.failing[payload.StoreID] {
		return nil, errors.New("upstream unavailable")
	}
	from, err := civil.ParseDate(payload.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := civil.ParseDate(payload.DateTo)
	if err != nil {
		return nil, err
	}
	return []domain.TimeSeriesPoint{{Date: from, Total: 10}, {Date: to, Total: 20}}, nil
}

type testEnv struct {
	router *gin.Engine
	repo   *repository.InMemoryStoreRepository
	source *stubSource
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryStoreRepository()
	source := &stubSource{failing: map[string]bool{}}

	dashboard := services.NewDashboardService(repo, source, 4, logger.Nop(), nil)
	stores := services.NewStoreService(repo, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if merchantID := c.GetHeader("X-Merchant-ID"); merchantID != "" {
			c.Set(middleware.ContextMerchantIDKey, merchantID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewDashboardHandler(dashboard).RegisterRoutes(api)
	adapterHTTP.NewStoreHandler(stores).RegisterRoutes(api)

	return &testEnv{router: r, repo: repo, source: source}
}

func (e *testEnv) addStore(t *testing.T, merchantID, name string) *domain.Store {
	t.Helper()
	store, err := domain.NewStore(merchantID, "shopee", name)
	require.NoError(t, err)
	require.NoError(t, e.repo.Create(context.Background(), store))
	return store
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Merchant-ID", testMerchant)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	return out
}
