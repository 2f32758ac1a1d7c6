package engine

import (
	"errors"
	"math"
)

// ErrInvalidUnits indicates an attempt to record a zero- or negative-quantity
// fill. Callers must not reach valuation with such a fill.
var ErrInvalidUnits = errors.New("units must be positive")

// UpdateHolding applies a buy of units at price to an existing holding, or
// creates a fresh holding for symbol when existing is nil. The average cost
// is recomputed from the closed-form weighted average on every update so it
// can never drift. The returned holding is revalued at the fill price.
func UpdateHolding(existing *Holding, symbol string, units, price float64) (Holding, error) {
	if units <= 0 || math.IsNaN(units) {
		return Holding{}, ErrInvalidUnits
	}
	if existing == nil {
		return Holding{
			Symbol:       symbol,
			Units:        units,
			AvgCost:      price,
			CurrentPrice: price,
			CurrentValue: units * price,
		}, nil
	}
	totalUnits := existing.Units + units
	avgCost := (existing.Units*existing.AvgCost + units*price) / totalUnits
	return Holding{
		Symbol:       existing.Symbol,
		Units:        totalUnits,
		AvgCost:      avgCost,
		CurrentPrice: price,
		CurrentValue: totalUnits * price,
	}, nil
}

// Revalue returns the holding repriced at the given current price.
func Revalue(h Holding, price float64) Holding {
	h.CurrentPrice = price
	h.CurrentValue = h.Units * price
	return h
}

// CalculateReturns aggregates holdings into invested amount, current value,
// and absolute and percentage gains. An empty holdings sequence yields all
// zeros; it is not an error.
func CalculateReturns(holdings []Holding) Returns {
	var r Returns
	for _, h := range holdings {
		r.Invested += h.Units * h.AvgCost
		r.Current += h.CurrentValue
	}
	r.Gains = r.Current - r.Invested
	if r.Invested != 0 {
		r.GainsPercent = r.Gains / r.Invested * 100
	}
	return r
}
