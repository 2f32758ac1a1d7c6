package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// transactionService ingests bank transactions and computes their round-ups.
type transactionService struct {
	db          *gorm.DB
	userService UserServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, userService UserServicer) TransactionServicer {
	return &transactionService{db: db, userService: userService}
}

// IngestBatch stores a batch of observed transactions and, in the same
// database transaction, appends a roundup_credit ledger entry for every debit
// whose round-up under the user's rule is nonzero. Entries reference their
// source transaction ID.
func (s *transactionService) IngestBatch(userID string, txs []IngestedTransaction) (*IngestResult, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	rule := roundupRule(user)
	if err := rule.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidRule, err)
	}

	for _, in := range txs {
		if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Transaction amounts must be positive and finite")
		}
	}

	result := &IngestResult{}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		records := make([]models.Transaction, len(txs))
		for i, in := range txs {
			date := in.Date
			if date.IsZero() {
				date = time.Now()
			}
			records[i] = models.Transaction{
				UserID:    userID,
				Amount:    in.Amount,
				Direction: in.Direction,
				Merchant:  in.Merchant,
				Category:  in.Category,
				Date:      date,
			}
		}
		if len(records) > 0 {
			if txErr := tx.Create(&records).Error; txErr != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
			}
		}
		result.Transactions = len(records)

		// Round-ups are computed from the stored records so every entry
		// carries its source transaction ID.
		observed := make([]engine.Transaction, len(records))
		for i, r := range records {
			observed[i] = engine.Transaction{
				ID:        r.ID,
				Amount:    r.Amount,
				Direction: engine.Direction(r.Direction),
				Date:      r.Date,
			}
		}
		roundups := engine.ProcessTransactions(rule, observed)
		if len(roundups) == 0 {
			return nil
		}

		entries := make([]models.LedgerEntry, len(roundups))
		for i, ru := range roundups {
			entries[i] = models.LedgerEntry{
				UserID:    userID,
				Amount:    ru.Amount,
				Type:      models.LedgerRoundupCredit,
				Reference: ru.Reference,
				Date:      ru.Timestamp,
			}
			result.RoundupTotal += ru.Amount
		}
		if txErr := tx.Create(&entries).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		result.Roundups = len(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetTransactions returns the user's transactions, newest first.
func (s *transactionService) GetTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC").Scopes(pagination.Scope(page)).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}
