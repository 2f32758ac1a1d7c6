package models

import "time"

// LedgerEntryType classifies an entry's contribution to the investable
// balance. The set mirrors engine.EntryType; unknown values are tolerated on
// read so forward-compatible entries never break balance computation.
type LedgerEntryType string

const (
	LedgerRoundupCredit   LedgerEntryType = "roundup_credit"
	LedgerManualTopup     LedgerEntryType = "manual_topup"
	LedgerInvestmentDebit LedgerEntryType = "investment_debit"
)

// LedgerEntry is one signed monetary event in a user's append-only ledger.
// The balance is always re-derived from the full entry sequence, never stored
// as mutable state.
type LedgerEntry struct {
	Base
	UserID    string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64         `gorm:"not null" json:"amount"`
	Type      LedgerEntryType `gorm:"not null" json:"type"`
	Reference string          `json:"reference,omitempty"` // source transaction or sweep run ID
	Date      time.Time       `gorm:"not null;index" json:"date"`
}
