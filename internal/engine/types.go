// Package engine implements the round-up-and-sweep calculation core: spare
// change computation, ledger balance folding, sweep gating and order
// allocation, and portfolio valuation. Everything in this package is a pure,
// synchronous function over immutable inputs; persistence, transport, and
// pricing live in the surrounding layers.
package engine

import "time"

// Direction classifies a bank transaction as money out or money in.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Transaction is a single observed bank transaction. Only debits produce
// round-ups.
type Transaction struct {
	ID        string
	Amount    float64
	Direction Direction
	Date      time.Time
	Merchant  string
	Category  string
}

// RoundupEntry is the spare-change amount computed for one debit transaction.
// Reference carries the source transaction ID.
type RoundupEntry struct {
	Amount    float64
	Reference string
	Timestamp time.Time
}

// EntryType classifies a ledger entry's contribution to the investable balance.
type EntryType string

const (
	EntryRoundupCredit   EntryType = "roundup_credit"
	EntryManualTopup     EntryType = "manual_topup"
	EntryInvestmentDebit EntryType = "investment_debit"
)

// LedgerEntry is one signed monetary event in a user's append-only ledger.
type LedgerEntry struct {
	Type   EntryType
	Amount float64
}

// Allocation assigns a percentage of the investable balance to one symbol.
type Allocation struct {
	Symbol    string  `json:"symbol"`
	WeightPct float64 `json:"weight_pct"`
}

// Order is a whole-unit purchase instruction produced by a sweep.
type Order struct {
	Symbol   string  `json:"symbol"`
	Quantity int64   `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Holding is a cumulative position in one symbol, tracked by units and
// weighted-average cost.
type Holding struct {
	Symbol       string
	Units        float64
	AvgCost      float64
	CurrentPrice float64
	CurrentValue float64
}

// Returns is the display-ready aggregate over a set of holdings.
type Returns struct {
	Invested     float64
	Current      float64
	Gains        float64
	GainsPercent float64
}
