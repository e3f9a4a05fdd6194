package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags the request context with a request id (reusing the
// caller's header when present) and logs one line per completed request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := log.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		fields := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if merchantID, ok := GetMerchantID(c); ok {
			fields["merchant_id"] = merchantID
		}
		ctx = log.WithFields(ctx, fields)

		if c.Writer.Status() >= http.StatusInternalServerError {
			var err error
			if last := c.Errors.Last(); last != nil {
				err = last
			}
			log.Error(ctx, "request.complete", err)
			return
		}
		log.Info(ctx, "request.complete")
	}
}
