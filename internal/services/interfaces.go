// Package services implements the orchestration layer between HTTP handlers
// and the calculation engine: persistence, snapshot reads, and transactional
// execution of sweeps. The arithmetic itself lives in internal/engine.
package services

import (
	"time"

	"paisa/internal/engine"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// UserServicer manages users and their round-up settings.
type UserServicer interface {
	CreateUser(email, name, preset string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	UpdateSettings(userID, preset string, rule engine.RoundupRule) (*models.User, error)
	ListActiveUsers() ([]models.User, error)
}

// IngestedTransaction is one bank transaction as delivered by the statement
// pipeline, before it gets an identity.
type IngestedTransaction struct {
	Amount    float64
	Direction models.TransactionDirection
	Merchant  string
	Category  string
	Date      time.Time
}

// IngestResult summarizes one ingested batch.
type IngestResult struct {
	Transactions int     `json:"transactions"`
	Roundups     int     `json:"roundups"`
	RoundupTotal float64 `json:"roundup_total"`
}

// TransactionServicer ingests and lists bank transactions.
type TransactionServicer interface {
	IngestBatch(userID string, txs []IngestedTransaction) (*IngestResult, error)
	GetTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

// LedgerServicer reads and appends to the investable-balance ledger.
type LedgerServicer interface {
	GetBalance(userID string) (float64, error)
	GetEntries(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error)
	RecordTopup(userID string, amount float64) (*models.LedgerEntry, error)
}

// SweepPreview is a dry-run sweep evaluation: no writes.
type SweepPreview struct {
	Balance        float64        `json:"balance"`
	MinSweepAmount float64        `json:"min_sweep_amount"`
	SweepDay       bool           `json:"sweep_day"`
	WouldSweep     bool           `json:"would_sweep"`
	Orders         []engine.Order `json:"orders"`
}

// SweepCycleResult summarizes one scheduler pass over all active users.
type SweepCycleResult struct {
	UsersChecked int
	Swept        int
	Skipped      int
	OrdersPlaced int
	Invested     float64
	Failures     int
}

// SweepServicer evaluates and executes sweeps.
type SweepServicer interface {
	Preview(userID string, now time.Time) (*SweepPreview, error)
	Execute(userID string, trigger models.SweepTrigger, now time.Time, force bool) (*models.SweepRun, error)
	GetRuns(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SweepRun], error)
	RunDue(now time.Time) (*SweepCycleResult, error)
}

// PortfolioReturns is the display-ready aggregate over a user's holdings.
type PortfolioReturns struct {
	Invested              float64 `json:"invested"`
	Current               float64 `json:"current"`
	Gains                 float64 `json:"gains"`
	GainsPercent          float64 `json:"gains_percent"`
	FormattedInvested     string  `json:"formatted_invested"`
	FormattedCurrent      string  `json:"formatted_current"`
	FormattedGains        string  `json:"formatted_gains"`
	FormattedGainsPercent string  `json:"formatted_gains_percent"`
}

// PortfolioServicer values holdings and computes returns.
type PortfolioServicer interface {
	GetHoldings(userID string) ([]models.Holding, error)
	GetReturns(userID string) (*PortfolioReturns, error)
}

// AuditServicer records mutating operations.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
