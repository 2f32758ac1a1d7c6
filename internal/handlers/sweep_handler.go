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

// SweepHandler exposes sweep preview, execution, and history.
type SweepHandler struct {
	sweepService services.SweepServicer
	auditService services.AuditServicer
}

// NewSweepHandler creates a new SweepHandler.
func NewSweepHandler(sweepService services.SweepServicer, auditService services.AuditServicer) *SweepHandler {
	return &SweepHandler{sweepService: sweepService, auditService: auditService}
}

// Preview evaluates a would-be sweep at current prices without writing
// anything.
func (h *SweepHandler) Preview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	preview, err := h.sweepService.Preview(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// ExecuteSweepRequest is the payload for a manual sweep.
type ExecuteSweepRequest struct {
	// Force bypasses the sweep-day gate, never the balance floor.
	Force bool `json:"force"`
}

// Execute runs a sweep for the scoped user now.
func (h *SweepHandler) Execute(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExecuteSweepRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	run, err := h.sweepService.Execute(userID, models.SweepTriggerManual, time.Now(), req.Force)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "EXECUTE_SWEEP", "sweep_run", run.ID, c.ClientIP(),
		map[string]interface{}{"invested": run.Invested, "orders": len(run.Orders), "force": req.Force})

	c.JSON(http.StatusCreated, gin.H{"run": run})
}

// History returns the scoped user's sweep runs with orders, newest first.
func (h *SweepHandler) History(c *gin.Context) {
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

	result, err := h.sweepService.GetRuns(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
