package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
)

// TransactionHandler handles bank-transaction ingestion and listing.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// IngestTransactionRequest is one transaction inside an ingest batch.
type IngestTransactionRequest struct {
	Amount    float64                     `json:"amount" binding:"required,gt=0,finite"`
	Direction models.TransactionDirection `json:"direction" binding:"required,direction"`
	Merchant  string                      `json:"merchant" binding:"max=255"`
	Category  string                      `json:"category" binding:"max=100"`
	Date      *string                     `json:"date"`
}

// IngestBatchRequest is the payload the bank feed posts.
type IngestBatchRequest struct {
	UserID       string                     `json:"user_id" binding:"required,uuid"`
	Transactions []IngestTransactionRequest `json:"transactions" binding:"required,min=1,max=1000,dive"`
}

// Ingest accepts a batch of bank transactions for one user, stores them, and
// credits the resulting round-ups to the user's ledger in one go.
func (h *TransactionHandler) Ingest(c *gin.Context) {
	var req IngestBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	batch := make([]services.IngestedTransaction, len(req.Transactions))
	for i, tx := range req.Transactions {
		date := time.Now()
		if tx.Date != nil && *tx.Date != "" {
			parsed, parseErr := parseFlexibleTime(*tx.Date)
			if parseErr != nil {
				respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
					"invalid date format, use RFC3339 or YYYY-MM-DD"))
				return
			}
			date = parsed
		}
		batch[i] = services.IngestedTransaction{
			Amount:    tx.Amount,
			Direction: tx.Direction,
			Merchant:  tx.Merchant,
			Category:  tx.Category,
			Date:      date,
		}
	}

	result, err := h.transactionService.IngestBatch(req.UserID, batch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.UserID, "INGEST_TRANSACTIONS", "transaction", "", c.ClientIP(),
		map[string]interface{}{"transactions": result.Transactions, "roundup_total": result.RoundupTotal})

	c.JSON(http.StatusCreated, result)
}

// List returns the scoped user's transactions, newest first.
func (h *TransactionHandler) List(c *gin.Context) {
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

	result, err := h.transactionService.GetTransactions(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
