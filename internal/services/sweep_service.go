package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/logger"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/pricefeed"
)

// sweepService evaluates and executes sweeps: it is the only writer of
// investment_debit entries and holding updates, and it performs an entire
// sweep in one database transaction so a failed sweep leaves no trace.
type sweepService struct {
	db          *gorm.DB
	userService UserServicer
	prices      pricefeed.Provider
}

// NewSweepService creates a new SweepServicer.
func NewSweepService(db *gorm.DB, userService UserServicer, prices pricefeed.Provider) SweepServicer {
	return &sweepService{db: db, userService: userService, prices: prices}
}

// sweeperFor builds the user's sweeper from their chosen preset.
func sweeperFor(user *models.User) (*engine.Sweeper, error) {
	sweeper, err := engine.NewPresetSweeper(user.Preset)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownPreset) {
			return nil, apperrors.WithMessage(apperrors.ErrUnknownPreset, "Unknown preset: "+user.Preset)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sweeper, nil
}

// Preview evaluates a would-be sweep without writing anything: the current
// balance, the gate decision, and the orders today's prices would produce.
func (s *sweepService) Preview(userID string, now time.Time) (*SweepPreview, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	sweeper, err := sweeperFor(user)
	if err != nil {
		return nil, err
	}

	entries, err := loadEntries(s.db, userID)
	if err != nil {
		return nil, err
	}
	balance := engine.CalculateBalance(entries)
	sweepDay := engine.IsAutoSweepDay(now)

	preview := &SweepPreview{
		Balance:        balance,
		MinSweepAmount: sweeper.MinSweepAmount(),
		SweepDay:       sweepDay,
		WouldSweep:     sweeper.ShouldSweep(balance, sweepDay),
		Orders:         []engine.Order{},
	}
	if preview.WouldSweep {
		preview.Orders = sweeper.CreateOrders(balance, s.prices.GetAllPrices())
	}
	return preview, nil
}

// Execute runs a sweep now. The balance snapshot, gate, order creation,
// ledger debit, and holding updates all happen inside one database
// transaction; any failure rolls the whole sweep back so no investment_debit
// is ever recorded for orders that did not persist. force bypasses the
// sweep-day gate only, never the balance floor.
func (s *sweepService) Execute(userID string, trigger models.SweepTrigger, now time.Time, force bool) (*models.SweepRun, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	sweeper, err := sweeperFor(user)
	if err != nil {
		return nil, err
	}

	var run models.SweepRun
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Single consistent snapshot: balance and prices are read once and
		// every derived write uses the same values.
		entries, txErr := loadEntries(tx, userID)
		if txErr != nil {
			return txErr
		}
		balance := engine.CalculateBalance(entries)

		if balance < sweeper.MinSweepAmount() {
			return apperrors.ErrSweepBelowFloor
		}
		if !engine.IsAutoSweepDay(now) && !force {
			return apperrors.ErrNotSweepDay
		}

		prices := s.prices.GetAllPrices()
		orders := sweeper.CreateOrders(balance, prices)
		if len(orders) == 0 {
			return apperrors.ErrNoOrders
		}

		var invested float64
		for _, o := range orders {
			invested += o.Amount
		}

		run = models.SweepRun{
			UserID:   userID,
			Balance:  balance,
			Invested: invested,
			Trigger:  trigger,
			SweptAt:  now,
		}
		if txErr := tx.Create(&run).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		for _, o := range orders {
			order := models.SweepOrder{
				SweepRunID: run.ID,
				UserID:     userID,
				Symbol:     o.Symbol,
				Quantity:   o.Quantity,
				Price:      o.Amount / float64(o.Quantity),
				Amount:     o.Amount,
			}
			if txErr := tx.Create(&order).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
			run.Orders = append(run.Orders, order)

			if txErr := applyFill(tx, userID, o); txErr != nil {
				return txErr
			}
		}

		debit := models.LedgerEntry{
			UserID:    userID,
			Amount:    invested,
			Type:      models.LedgerInvestmentDebit,
			Reference: run.ID,
			Date:      now,
		}
		if txErr := tx.Create(&debit).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Infow("sweep executed",
		"user_id", userID,
		"trigger", trigger,
		"balance", run.Balance,
		"invested", run.Invested,
		"orders", len(run.Orders),
	)
	return &run, nil
}

// applyFill folds one confirmed order into the user's holding for its symbol.
func applyFill(tx *gorm.DB, userID string, o engine.Order) error {
	price := o.Amount / float64(o.Quantity)

	var record models.Holding
	var existing *engine.Holding
	err := tx.Where("user_id = ? AND symbol = ?", userID, o.Symbol).First(&record).Error
	switch {
	case err == nil:
		existing = &engine.Holding{Symbol: record.Symbol, Units: record.Units, AvgCost: record.AvgCost}
	case errors.Is(err, gorm.ErrRecordNotFound):
		existing = nil
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updated, err := engine.UpdateHolding(existing, o.Symbol, float64(o.Quantity), price)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidUnits, err)
	}

	if existing == nil {
		record = models.Holding{UserID: userID, Symbol: o.Symbol, Units: updated.Units, AvgCost: updated.AvgCost}
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	}
	if err := tx.Model(&record).Updates(map[string]interface{}{
		"units":    updated.Units,
		"avg_cost": updated.AvgCost,
	}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetRuns returns the user's sweep history with orders, newest first.
func (s *sweepService) GetRuns(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SweepRun], error) {
	page.Defaults()

	base := s.db.Model(&models.SweepRun{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var runs []models.SweepRun
	if err := s.db.Preload("Orders").Where("user_id = ?", userID).
		Order("swept_at DESC").Scopes(pagination.Scope(page)).Find(&runs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(runs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RunDue sweeps every active user whose balance has reached their preset's
// floor. Outside a sweep day it does nothing. Below-floor and no-order users
// are skips, not failures.
func (s *sweepService) RunDue(now time.Time) (*SweepCycleResult, error) {
	result := &SweepCycleResult{}
	if !engine.IsAutoSweepDay(now) {
		return result, nil
	}

	users, err := s.userService.ListActiveUsers()
	if err != nil {
		return nil, err
	}
	result.UsersChecked = len(users)

	for _, user := range users {
		run, err := s.Execute(user.ID, models.SweepTriggerScheduled, now, false)
		if err != nil {
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) &&
				(appErr.Code == apperrors.ErrSweepBelowFloor.Code || appErr.Code == apperrors.ErrNoOrders.Code) {
				result.Skipped++
				continue
			}
			result.Failures++
			logger.Get().Errorw("scheduled sweep failed", "user_id", user.ID, "error", err)
			continue
		}
		result.Swept++
		result.OrdersPlaced += len(run.Orders)
		result.Invested += run.Invested
	}
	return result, nil
}
