package services

import (
	"gorm.io/gorm"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pricefeed"
)

// portfolioService values holdings at current prices and aggregates returns.
type portfolioService struct {
	db     *gorm.DB
	prices pricefeed.Provider
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, prices pricefeed.Provider) PortfolioServicer {
	return &portfolioService{db: db, prices: prices}
}

// GetHoldings returns the user's holdings revalued at current prices. One
// price snapshot covers the whole listing so the positions are mutually
// consistent.
func (s *portfolioService) GetHoldings(userID string) ([]models.Holding, error) {
	var holdings []models.Holding
	if err := s.db.Where("user_id = ?", userID).Order("symbol ASC").Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	prices := s.prices.GetAllPrices()
	for i := range holdings {
		price, ok := prices[holdings[i].Symbol]
		if !ok {
			price = s.prices.GetCurrentPrice(holdings[i].Symbol)
		}
		holdings[i].CurrentPrice = price
		holdings[i].CurrentValue = holdings[i].Units * price
	}
	return holdings, nil
}

// GetReturns aggregates the user's revalued holdings into the returns
// summary, including the display strings the presentation layer renders.
func (s *portfolioService) GetReturns(userID string) (*PortfolioReturns, error) {
	holdings, err := s.GetHoldings(userID)
	if err != nil {
		return nil, err
	}

	valued := make([]engine.Holding, len(holdings))
	for i, h := range holdings {
		valued[i] = engine.Holding{
			Symbol:       h.Symbol,
			Units:        h.Units,
			AvgCost:      h.AvgCost,
			CurrentPrice: h.CurrentPrice,
			CurrentValue: h.CurrentValue,
		}
	}
	r := engine.CalculateReturns(valued)

	return &PortfolioReturns{
		Invested:              r.Invested,
		Current:               r.Current,
		Gains:                 r.Gains,
		GainsPercent:          r.GainsPercent,
		FormattedInvested:     engine.FormatCurrency(r.Invested),
		FormattedCurrent:      engine.FormatCurrency(r.Current),
		FormattedGains:        engine.FormatCurrency(r.Gains),
		FormattedGainsPercent: engine.FormatPercentage(r.GainsPercent),
	}, nil
}
