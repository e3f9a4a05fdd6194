package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
)

const (
	authorizationHeader  = "Authorization"
	authorizationType    = "Bearer"
	ContextMerchantIDKey = "merchantID"
)

// AuthMiddleware accepts platform-issued bearer tokens and stores the
// merchant id they were issued for.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != authorizationType {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		merchantID, err := tokenService.ValidateToken(fields[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextMerchantIDKey, merchantID)

		c.Next()
	}
}

func GetMerchantID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextMerchantIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok && idStr != ""
}
