package models

import "time"

// TransactionDirection classifies a bank transaction as money out or in.
type TransactionDirection string

const (
	TransactionDebit  TransactionDirection = "debit"
	TransactionCredit TransactionDirection = "credit"
)

// Transaction is an observed bank transaction ingested from the statement
// pipeline. Immutable once recorded.
type Transaction struct {
	Base
	UserID    string               `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    float64              `gorm:"not null" json:"amount"`
	Direction TransactionDirection `gorm:"not null" json:"direction"`
	Merchant  string               `json:"merchant"`
	Category  string               `json:"category,omitempty"`
	Date      time.Time            `gorm:"not null;index" json:"date"`
}
