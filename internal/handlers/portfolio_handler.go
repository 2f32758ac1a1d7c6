package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paisa/internal/services"
)

// PortfolioHandler exposes valued holdings and returns.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Holdings returns the scoped user's holdings revalued at current prices.
func (h *PortfolioHandler) Holdings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	holdings, err := h.portfolioService.GetHoldings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// Returns returns the scoped user's aggregate portfolio returns, including
// display strings.
func (h *PortfolioHandler) Returns(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	returns, err := h.portfolioService.GetReturns(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, returns)
}
