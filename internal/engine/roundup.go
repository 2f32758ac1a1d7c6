package engine

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRule indicates a malformed round-up rule. Rule validation failures
// are programmer errors and fatal to the caller, unlike the per-transaction
// bounds checks which simply yield a zero round-up.
var ErrInvalidRule = errors.New("invalid roundup rule")

// RoundupRule configures how a transaction amount is rounded up. Amounts are
// rounded to the next multiple of RoundToNearest; computed round-ups outside
// [MinRoundup, MaxRoundup] are not collected. Both bounds are configurable
// per user.
type RoundupRule struct {
	RoundToNearest float64
	MinRoundup     float64
	MaxRoundup     float64
}

// Validate checks the rule's configuration.
func (r RoundupRule) Validate() error {
	if r.RoundToNearest <= 0 || r.RoundToNearest != math.Trunc(r.RoundToNearest) {
		return fmt.Errorf("%w: round_to_nearest must be a positive whole unit, got %v", ErrInvalidRule, r.RoundToNearest)
	}
	if r.MinRoundup < 0 {
		return fmt.Errorf("%w: min_roundup must not be negative, got %v", ErrInvalidRule, r.MinRoundup)
	}
	if r.MinRoundup > r.MaxRoundup {
		return fmt.Errorf("%w: min_roundup %v exceeds max_roundup %v", ErrInvalidRule, r.MinRoundup, r.MaxRoundup)
	}
	return nil
}

// CalculateRoundup returns the spare change collected for a single amount
// under the rule, or 0 when the amount is already a multiple of
// RoundToNearest or the candidate round-up falls outside the rule's bounds.
// Non-finite and non-positive amounts yield 0; rejecting them is the caller's
// job, but the fold must stay total.
func CalculateRoundup(rule RoundupRule, amount float64) float64 {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return 0
	}
	remainder := math.Mod(amount, rule.RoundToNearest)
	if remainder == 0 {
		return 0
	}
	candidate := rule.RoundToNearest - remainder
	if candidate < rule.MinRoundup || candidate > rule.MaxRoundup {
		return 0
	}
	return candidate
}

// ProcessTransactions computes round-up entries for a batch of transactions.
// Credits and transactions whose round-up is zero are dropped; output order
// follows input order. Each entry references its source transaction ID.
func ProcessTransactions(rule RoundupRule, transactions []Transaction) []RoundupEntry {
	entries := make([]RoundupEntry, 0, len(transactions))
	for _, tx := range transactions {
		if tx.Direction != DirectionDebit {
			continue
		}
		amount := CalculateRoundup(rule, tx.Amount)
		if amount == 0 {
			continue
		}
		entries = append(entries, RoundupEntry{
			Amount:    amount,
			Reference: tx.ID,
			Timestamp: tx.Date,
		})
	}
	return entries
}
