package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/database"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports service and database health
type HealthHandler struct {
	conn *database.Connection
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(conn *database.Connection) *HealthHandler {
	return &HealthHandler{conn: conn}
}

// Check handles the GET /health endpoint
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.conn.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "down",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "up",
	})
}
