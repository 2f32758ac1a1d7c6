package models

import "time"

// SweepTrigger records what initiated a sweep run.
type SweepTrigger string

const (
	SweepTriggerScheduled SweepTrigger = "scheduled"
	SweepTriggerManual    SweepTrigger = "manual"
)

// SweepRun records one executed sweep: the balance it observed, the total it
// invested, and the orders it placed.
type SweepRun struct {
	Base
	UserID   string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Balance  float64      `gorm:"not null" json:"balance"`
	Invested float64      `gorm:"not null" json:"invested"`
	Trigger  SweepTrigger `gorm:"not null" json:"trigger"`
	SweptAt  time.Time    `gorm:"not null" json:"swept_at"`

	// Relationships
	Orders []SweepOrder `gorm:"foreignKey:SweepRunID" json:"orders,omitempty"`
}

// SweepOrder is one whole-unit purchase placed by a sweep run.
type SweepOrder struct {
	Base
	SweepRunID string  `gorm:"type:uuid;not null;index" json:"sweep_run_id"`
	UserID     string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Symbol     string  `gorm:"not null" json:"symbol"`
	Quantity   int64   `gorm:"not null" json:"quantity"`
	Price      float64 `gorm:"not null" json:"price"`
	Amount     float64 `gorm:"not null" json:"amount"`
}
