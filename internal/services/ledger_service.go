package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/logger"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// ledgerService reads and appends to the append-only balance ledger.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// loadEntries reads a user's full ledger in insertion order and maps it to
// engine entries. The fold always runs over the complete sequence.
func loadEntries(db *gorm.DB, userID string) ([]engine.LedgerEntry, error) {
	var records []models.LedgerEntry
	if err := db.Where("user_id = ?", userID).Order("date ASC, created_at ASC").Find(&records).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	entries := make([]engine.LedgerEntry, len(records))
	for i, r := range records {
		entries[i] = engine.LedgerEntry{Type: engine.EntryType(r.Type), Amount: r.Amount}
	}

	if unknown := engine.UnknownEntryTypes(entries); len(unknown) > 0 {
		logger.Get().Warnw("ignoring ledger entries with unknown types",
			"user_id", userID,
			"types", unknown,
		)
	}
	return entries, nil
}

// GetBalance re-derives the user's investable balance from the full entry
// sequence.
func (s *ledgerService) GetBalance(userID string) (float64, error) {
	entries, err := loadEntries(s.db, userID)
	if err != nil {
		return 0, err
	}
	return engine.CalculateBalance(entries), nil
}

// GetEntries returns the user's ledger entries, newest first.
func (s *ledgerService) GetEntries(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error) {
	page.Defaults()

	base := s.db.Model(&models.LedgerEntry{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.LedgerEntry
	if err := base.Order("date DESC, created_at DESC").Scopes(pagination.Scope(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// RecordTopup appends a manual_topup entry.
func (s *ledgerService) RecordTopup(userID string, amount float64) (*models.LedgerEntry, error) {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, apperrors.ErrInvalidAmount
	}

	entry := &models.LedgerEntry{
		UserID: userID,
		Amount: amount,
		Type:   models.LedgerManualTopup,
		Date:   time.Now(),
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}
