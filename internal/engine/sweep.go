package engine

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidAllocation indicates a malformed allocation set or sweep floor.
// Like rule validation, this is fatal at construction time.
var ErrInvalidAllocation = errors.New("invalid allocation")

// weightTolerance absorbs float accumulation when checking that allocation
// weights sum to 100.
const weightTolerance = 1e-9

// Sweeper converts an investable balance into whole-unit purchase orders
// across a fixed target allocation. A Sweeper is immutable after
// construction and each evaluation is independent and idempotent given the
// same inputs.
type Sweeper struct {
	allocations    []Allocation
	minSweepAmount float64
}

// NewSweeper builds a Sweeper from an allocation set and a sweep floor.
// Weights must sum to exactly 100 and the floor must lie in (0, 1000).
func NewSweeper(allocations []Allocation, minSweepAmount float64) (*Sweeper, error) {
	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: empty allocation set", ErrInvalidAllocation)
	}
	var sum float64
	for _, a := range allocations {
		if a.Symbol == "" {
			return nil, fmt.Errorf("%w: allocation with empty symbol", ErrInvalidAllocation)
		}
		if a.WeightPct <= 0 || a.WeightPct > 100 {
			return nil, fmt.Errorf("%w: weight %v for %s out of range", ErrInvalidAllocation, a.WeightPct, a.Symbol)
		}
		sum += a.WeightPct
	}
	if math.Abs(sum-100) > weightTolerance {
		return nil, fmt.Errorf("%w: weights sum to %v, want 100", ErrInvalidAllocation, sum)
	}
	if minSweepAmount <= 0 || minSweepAmount >= 1000 {
		return nil, fmt.Errorf("%w: min sweep amount %v outside (0, 1000)", ErrInvalidAllocation, minSweepAmount)
	}
	s := &Sweeper{
		allocations:    make([]Allocation, len(allocations)),
		minSweepAmount: minSweepAmount,
	}
	copy(s.allocations, allocations)
	return s, nil
}

// Allocations returns a copy of the sweeper's allocation set.
func (s *Sweeper) Allocations() []Allocation {
	out := make([]Allocation, len(s.allocations))
	copy(out, s.allocations)
	return out
}

// MinSweepAmount returns the balance floor below which no sweep runs.
func (s *Sweeper) MinSweepAmount() float64 { return s.minSweepAmount }

// ShouldSweep reports whether a sweep should execute: the balance must have
// reached the floor AND today must be a sweep day. Day classification is the
// caller's concern; see IsAutoSweepDay.
func (s *Sweeper) ShouldSweep(balance float64, isSweepDay bool) bool {
	return balance >= s.minSweepAmount && isSweepDay
}

// CreateOrders splits the balance across the allocation set at the given
// prices and emits one whole-unit order per allocation that can afford at
// least one unit. Fractional units are never bought: a sub-balance that buys
// less than one unit produces no order, and a missing or non-positive price
// skips that allocation without failing the sweep. The unallocated remainder
// is not tracked; it simply stays in the balance for the next sweep. Output
// order follows the allocation list.
func (s *Sweeper) CreateOrders(balance float64, prices map[string]float64) []Order {
	orders := make([]Order, 0, len(s.allocations))
	for _, alloc := range s.allocations {
		allocated := balance * alloc.WeightPct / 100
		price, ok := prices[alloc.Symbol]
		if !ok || price <= 0 {
			continue
		}
		quantity := int64(math.Floor(allocated / price))
		if quantity < 1 {
			continue
		}
		orders = append(orders, Order{
			Symbol:   alloc.Symbol,
			Quantity: quantity,
			Amount:   float64(quantity) * price,
		})
	}
	return orders
}

// IsAutoSweepDay reports whether automatic sweeps run on the given date.
// Policy: Sundays only. Time zones and market holidays are deliberately not
// handled here; a scheduler with a different calendar can supply its own
// answer to ShouldSweep.
func IsAutoSweepDay(t time.Time) bool {
	return t.Weekday() == time.Sunday
}
