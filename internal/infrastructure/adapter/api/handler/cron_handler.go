package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CronHandler handles scheduled maintenance endpoints
type CronHandler struct {
	credits usecase.CreditsUseCase
	logger  coreport.Logger
}

// NewCronHandler creates a new cron handler instance
func NewCronHandler(credits usecase.CreditsUseCase, logger coreport.Logger) *CronHandler {
	return &CronHandler{
		credits: credits,
		logger:  logger,
	}
}

// SweepExpiredBatches handles the POST /cron/credits/sweep-expired endpoint.
// A partial sweep still returns the batches that were expired; the error is
// logged so the next scheduled run can retry the remainder.
func (h *CronHandler) SweepExpiredBatches(c *gin.Context) {
	expired, err := h.credits.ProcessExpiredBatches(c.Request.Context())
	if err != nil {
		h.logger.Error("Expiration sweep finished with errors", map[string]any{
			"expired": len(expired),
			"error":   err.Error(),
		})
		if len(expired) == 0 {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(err),
				Message: "Expiration sweep failed",
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.FromExpiredBatches(expired))
}
