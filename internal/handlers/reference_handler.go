package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/engine"
	"paisa/internal/pricefeed"
)

// ReferenceHandler serves static reference data: allocation presets and the
// current price snapshot.
type ReferenceHandler struct {
	prices pricefeed.Provider
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(prices pricefeed.Provider) *ReferenceHandler {
	return &ReferenceHandler{prices: prices}
}

// Presets lists the named allocation presets.
func (h *ReferenceHandler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": engine.Presets()})
}

// Prices returns the current simulated price for every known symbol.
func (h *ReferenceHandler) Prices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prices": h.prices.GetAllPrices()})
}
