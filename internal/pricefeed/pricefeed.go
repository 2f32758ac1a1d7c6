// Package pricefeed supplies current market prices for instrument symbols.
// The Provider interface is what the sweep and portfolio layers consume; the
// Simulator implementation stands in for a live market-data feed and is
// explicitly a simulation, not a source of truth.
package pricefeed

import (
	"math/rand"
	"sync"
	"time"
)

// Provider returns current prices keyed by instrument symbol.
type Provider interface {
	// GetCurrentPrice returns a positive price for the symbol. Unknown
	// symbols still price (at a fallback base), so a lookup never fails.
	GetCurrentPrice(symbol string) float64

	// GetAllPrices returns a price for every symbol the provider knows,
	// each independently sampled.
	GetAllPrices() map[string]float64
}

// DefaultBasePrice is the fallback base for symbols outside the base table.
const DefaultBasePrice = 100.0

// jitterBand bounds the uniform variation applied around a base price (±2%).
const jitterBand = 0.02

// basePrices is the fixed base table of NSE ETF symbols.
var basePrices = map[string]float64{
	"NIFTYBEES":  285.50,
	"GOLDBEES":   65.25,
	"LIQUIDBEES": 1000.00,
	"JUNIORBEES": 52.40,
	"BANKBEES":   458.75,
}

// Simulator produces prices with bounded random variation around a fixed
// base table. Safe for concurrent use.
type Simulator struct {
	mu   sync.Mutex
	rng  *rand.Rand
	base map[string]float64
}

// NewSimulator creates a Simulator seeded from the wall clock.
func NewSimulator() *Simulator {
	return NewSimulatorWithSeed(time.Now().UnixNano())
}

// NewSimulatorWithSeed creates a deterministic Simulator for tests.
func NewSimulatorWithSeed(seed int64) *Simulator {
	return &Simulator{
		rng:  rand.New(rand.NewSource(seed)),
		base: basePrices,
	}
}

// BasePrice returns the un-jittered base for a symbol, falling back to
// DefaultBasePrice for unknown symbols.
func (s *Simulator) BasePrice(symbol string) float64 {
	if base, ok := s.base[symbol]; ok {
		return base
	}
	return DefaultBasePrice
}

// GetCurrentPrice returns the symbol's base price with uniform jitter drawn
// from [-2%, +2%].
func (s *Simulator) GetCurrentPrice(symbol string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jittered(s.BasePrice(symbol))
}

// GetAllPrices returns an independently jittered price for every symbol in
// the base table.
func (s *Simulator) GetAllPrices() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	prices := make(map[string]float64, len(s.base))
	for symbol, base := range s.base {
		prices[symbol] = s.jittered(base)
	}
	return prices
}

// Symbols returns the symbols in the base table.
func (s *Simulator) Symbols() []string {
	symbols := make([]string, 0, len(s.base))
	for symbol := range s.base {
		symbols = append(symbols, symbol)
	}
	return symbols
}

// jittered applies one uniform sample from the jitter band. Callers hold mu.
func (s *Simulator) jittered(base float64) float64 {
	jitter := (s.rng.Float64()*2 - 1) * jitterBand
	return base * (1 + jitter)
}
