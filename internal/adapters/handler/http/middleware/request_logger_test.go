package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(buf *bytes.Buffer, status int) *gin.Engine {
		router := gin.New()
		router.Use(RequestLogger(logger.New(logger.Options{ServiceName: "test", Output: buf})))
		router.GET("/ping", func(c *gin.Context) {
			c.Set(ContextMerchantIDKey, "merchant-1")
			c.Status(status)
		})
		return router
	}

	t.Run("Propagates incoming request id", func(t *testing.T) {
		buf := &bytes.Buffer{}
		router := newRouter(buf, http.StatusOK)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-abc", w.Header().Get(RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-abc", entry["request_id"])
		assert.Equal(t, "merchant-1", entry["merchant_id"])
		assert.Equal(t, "request.complete", entry["message"])
		assert.Equal(t, "info", entry["level"])
		assert.EqualValues(t, http.StatusOK, entry["status"])
	})

	t.Run("Generates request id and logs server errors at error level", func(t *testing.T) {
		buf := &bytes.Buffer{}
		router := newRouter(buf, http.StatusInternalServerError)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "error", entry["level"])
		assert.Equal(t, w.Header().Get(RequestIDHeader), entry["request_id"])
	})
}
