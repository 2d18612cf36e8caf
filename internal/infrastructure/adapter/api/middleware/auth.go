package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CronAuth guards scheduled maintenance endpoints with a shared bearer token.
// When no token is configured the endpoints stay open, which is only
// acceptable in local development.
func CronAuth(token string, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		presented, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			logger.Warn("Rejected cron request with missing or invalid token", map[string]any{
				"path":      c.Request.URL.Path,
				"client_ip": c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing or invalid bearer token",
			})
			return
		}

		c.Next()
	}
}
