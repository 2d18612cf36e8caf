package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/credits-ledger/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/credits-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// CreditsHandler handles credits-related HTTP requests
type CreditsHandler struct {
	credits usecase.CreditsUseCase
	logger  coreport.Logger
}

// NewCreditsHandler creates a new credits handler instance
func NewCreditsHandler(credits usecase.CreditsUseCase, logger coreport.Logger) *CreditsHandler {
	return &CreditsHandler{
		credits: credits,
		logger:  logger,
	}
}

// GrantCredits handles the POST /user/{userId}/credits/grant endpoint
func (h *CreditsHandler) GrantCredits(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid grant request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.credits.GrantCredits(c.Request.Context(), usecase.GrantRequest{
		UserID:          userID,
		Amount:          req.Amount,
		SourceType:      entity.BatchSource(req.SourceType),
		TransactionType: entity.TransactionType(req.TransactionType),
		ExpiresAt:       req.ExpiresAt,
		SourceRef:       req.SourceRef,
		Description:     req.Description,
		Metadata:        req.Metadata,
	})
	if err != nil {
		h.writeError(c, "grant", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.GrantResponse{
		BatchID:    result.BatchID,
		NewBalance: result.NewBalance,
		Replayed:   result.Replayed,
	})
}

// ConsumeCredits handles the POST /user/{userId}/credits/consume endpoint
func (h *CreditsHandler) ConsumeCredits(c *gin.Context) {
	userID := c.Param("userId")

	var req dto.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid consume request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	result, err := h.credits.ConsumeCredits(c.Request.Context(), usecase.ConsumeRequest{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.writeError(c, "consume", userID, err)
		return
	}

	debits := make([]dto.BatchDebit, 0, len(result.BatchesDebited))
	for _, d := range result.BatchesDebited {
		debits = append(debits, dto.BatchDebit{BatchID: d.BatchID, Amount: d.Amount})
	}
	c.JSON(http.StatusOK, dto.ConsumeResponse{
		NewBalance:     result.NewBalance,
		BatchesDebited: debits,
	})
}

// EnsureRegistrationBonus handles the POST /user/{userId}/credits/registration-bonus endpoint
func (h *CreditsHandler) EnsureRegistrationBonus(c *gin.Context) {
	userID := c.Param("userId")

	result, err := h.credits.EnsureRegistrationBonus(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "registration_bonus", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.BonusResponse{
		Granted: result.Granted,
		BatchID: result.BatchID,
		Balance: result.Balance,
	})
}

// GetBalance handles the GET /user/{userId}/credits/balance endpoint
func (h *CreditsHandler) GetBalance(c *gin.Context) {
	userID := c.Param("userId")

	balance, err := h.credits.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "get_balance", userID, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBalance(balance))
}

// GetActiveBatches handles the GET /user/{userId}/credits/batches endpoint
func (h *CreditsHandler) GetActiveBatches(c *gin.Context) {
	userID := c.Param("userId")

	batches, err := h.credits.GetActiveBatches(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "get_batches", userID, err)
		return
	}

	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.FromBatch(b))
	}
	c.JSON(http.StatusOK, out)
}

// GetTransactions handles the GET /user/{userId}/credits/transactions endpoint
func (h *CreditsHandler) GetTransactions(c *gin.Context) {
	userID := c.Param("userId")
	limit := parseIntQuery(c, "limit", 0)
	offset := parseIntQuery(c, "offset", 0)

	transactions, err := h.credits.GetTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.writeError(c, "get_transactions", userID, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, dto.FromTransaction(t))
	}
	c.JSON(http.StatusOK, out)
}

// FreezeAccount handles the POST /user/{userId}/credits/freeze endpoint
func (h *CreditsHandler) FreezeAccount(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.credits.FreezeAccount(c.Request.Context(), userID); err != nil {
		h.writeError(c, "freeze", userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "status": "frozen"})
}

// UnfreezeAccount handles the POST /user/{userId}/credits/unfreeze endpoint
func (h *CreditsHandler) UnfreezeAccount(c *gin.Context) {
	userID := c.Param("userId")

	if err := h.credits.UnfreezeAccount(c.Request.Context(), userID); err != nil {
		h.writeError(c, "unfreeze", userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "status": "active"})
}

// writeError maps a domain error to the appropriate HTTP response
func (h *CreditsHandler) writeError(c *gin.Context, operation, userID string, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Credits operation failed", map[string]any{
			"operation": operation,
			"userId":    userID,
			"error":     err.Error(),
		})
	}
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsInsufficientCreditsError(err):
		return http.StatusPaymentRequired
	case domainerr.IsAccountFrozenError(err):
		return http.StatusForbidden
	case domainerr.IsDuplicateSourceRefError(err):
		return http.StatusConflict
	case domainerr.IsValidationError(err):
		return http.StatusBadRequest
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery reads an integer query parameter, falling back on bad input
func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
