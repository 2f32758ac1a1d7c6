package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// LedgerHandler exposes the investable-balance ledger.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
	auditService  services.AuditServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer, auditService services.AuditServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, auditService: auditService}
}

// Balance returns the scoped user's current investable balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.ledgerService.GetBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance":           balance,
		"formatted_balance": engine.FormatCurrency(balance),
	})
}

// Entries returns the scoped user's ledger entries, newest first.
func (h *LedgerHandler) Entries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.GetEntries(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TopupRequest is the payload for a manual top-up.
type TopupRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0,finite"`
}

// Topup credits the scoped user's ledger with a manual top-up.
func (h *LedgerHandler) Topup(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.ledgerService.RecordTopup(userID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_TOPUP", "ledger_entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}
