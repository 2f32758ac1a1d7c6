package engine

import (
	"math"
	"testing"
	"time"
)

func growthSweeper(t *testing.T) *Sweeper {
	t.Helper()
	s, err := NewSweeper([]Allocation{
		{Symbol: "NIFTYBEES", WeightPct: 70},
		{Symbol: "GOLDBEES", WeightPct: 30},
	}, 100)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	return s
}

func TestNewSweeper(t *testing.T) {
	tests := []struct {
		name    string
		allocs  []Allocation
		minAmt  float64
		wantErr bool
	}{
		{"valid", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 100}}, 100, false},
		{"empty", nil, 100, true},
		{"weights_under_100", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 90}}, 100, true},
		{"weights_over_100", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 70}, {Symbol: "GOLDBEES", WeightPct: 40}}, 100, true},
		{"zero_weight", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 0}, {Symbol: "GOLDBEES", WeightPct: 100}}, 100, true},
		{"empty_symbol", []Allocation{{Symbol: "", WeightPct: 100}}, 100, true},
		{"zero_floor", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 100}}, 0, true},
		{"floor_at_1000", []Allocation{{Symbol: "NIFTYBEES", WeightPct: 100}}, 1000, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSweeper(tc.allocs, tc.minAmt)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestShouldSweep(t *testing.T) {
	s := growthSweeper(t)

	tests := []struct {
		name       string
		balance    float64
		isSweepDay bool
		want       bool
	}{
		{"enough_on_sweep_day", 150, true, true},
		{"below_floor", 50, true, false},
		{"not_sweep_day", 150, false, false},
		{"exactly_at_floor", 100, true, true},
		{"neither", 50, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.ShouldSweep(tc.balance, tc.isSweepDay); got != tc.want {
				t.Errorf("ShouldSweep(%v, %v) = %v, want %v", tc.balance, tc.isSweepDay, got, tc.want)
			}
		})
	}
}

func TestCreateOrders(t *testing.T) {
	s := growthSweeper(t)
	prices := map[string]float64{"NIFTYBEES": 285.50, "GOLDBEES": 65.25}

	orders := s.CreateOrders(1000, prices)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d: %+v", len(orders), orders)
	}

	// 70% of 1000 buys floor(700/285.50) = 2 units; 30% buys floor(300/65.25) = 4.
	if orders[0].Symbol != "NIFTYBEES" || orders[0].Quantity != 2 || orders[0].Amount != 571.00 {
		t.Errorf("order 0 = %+v, want NIFTYBEES x2 for 571.00", orders[0])
	}
	if orders[1].Symbol != "GOLDBEES" || orders[1].Quantity != 4 || orders[1].Amount != 261.00 {
		t.Errorf("order 1 = %+v, want GOLDBEES x4 for 261.00", orders[1])
	}
}

func TestCreateOrdersAllSubUnit(t *testing.T) {
	s := growthSweeper(t)
	prices := map[string]float64{"NIFTYBEES": 1000, "GOLDBEES": 65.25}

	// 70 buys no NIFTYBEES at 1000; 30 buys no GOLDBEES at 65.25.
	if orders := s.CreateOrders(100, prices); len(orders) != 0 {
		t.Errorf("expected no orders, got %+v", orders)
	}
}

func TestCreateOrdersMissingPrice(t *testing.T) {
	s := growthSweeper(t)

	orders := s.CreateOrders(1000, map[string]float64{"GOLDBEES": 65.25})
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].Symbol != "GOLDBEES" {
		t.Errorf("expected surviving GOLDBEES order, got %+v", orders[0])
	}

	// A non-positive price is equivalent to no price.
	orders = s.CreateOrders(1000, map[string]float64{"NIFTYBEES": 0, "GOLDBEES": 65.25})
	if len(orders) != 1 || orders[0].Symbol != "GOLDBEES" {
		t.Errorf("expected GOLDBEES only with zero NIFTYBEES price, got %+v", orders)
	}
}

func TestCreateOrdersNeverExceedAllocation(t *testing.T) {
	s := growthSweeper(t)
	prices := map[string]float64{"NIFTYBEES": 285.50, "GOLDBEES": 65.25}

	for balance := 100.0; balance <= 5000; balance += 37 {
		for _, order := range s.CreateOrders(balance, prices) {
			var weight float64
			for _, a := range s.Allocations() {
				if a.Symbol == order.Symbol {
					weight = a.WeightPct
				}
			}
			allocated := balance * weight / 100
			if order.Amount > allocated+1e-9 {
				t.Fatalf("order %+v exceeds allocated %v at balance %v", order, allocated, balance)
			}
			if order.Quantity < 1 {
				t.Fatalf("order %+v with sub-unit quantity", order)
			}
		}
	}
}

// A balance stuck below every symbol's unit price produces no orders on any
// sweep: the discarded remainder means it can stagnate indefinitely.
func TestSmallBalanceStagnates(t *testing.T) {
	s := growthSweeper(t)
	prices := map[string]float64{"NIFTYBEES": 285.50, "GOLDBEES": 500.00}

	balance := 120.0
	for i := 0; i < 10; i++ {
		if orders := s.CreateOrders(balance, prices); len(orders) != 0 {
			t.Fatalf("sweep %d produced orders %+v from stagnant balance", i, orders)
		}
		// Nothing was invested, so the balance carries over unchanged.
	}
}

func TestSweeperImmutability(t *testing.T) {
	allocs := []Allocation{{Symbol: "NIFTYBEES", WeightPct: 100}}
	s, err := NewSweeper(allocs, 100)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	allocs[0].Symbol = "MUTATED"
	got := s.Allocations()
	if got[0].Symbol != "NIFTYBEES" {
		t.Error("sweeper shares backing array with caller input")
	}
	got[0].Symbol = "MUTATED"
	if s.Allocations()[0].Symbol != "NIFTYBEES" {
		t.Error("Allocations() exposes internal slice")
	}
}

func TestIsAutoSweepDay(t *testing.T) {
	sunday := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	if !IsAutoSweepDay(sunday) {
		t.Errorf("expected %v (Sunday) to be a sweep day", sunday)
	}
	for d := 1; d <= 6; d++ {
		day := sunday.AddDate(0, 0, d)
		if IsAutoSweepDay(day) {
			t.Errorf("expected %v (%v) not to be a sweep day", day, day.Weekday())
		}
	}
}

func TestCreateOrdersFloorNotRound(t *testing.T) {
	s, err := NewSweeper([]Allocation{{Symbol: "GOLDBEES", WeightPct: 100}}, 100)
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}
	// 999 / 100 = 9.99: floor gives 9, rounding would give 10.
	orders := s.CreateOrders(999, map[string]float64{"GOLDBEES": 100})
	if len(orders) != 1 || orders[0].Quantity != 9 {
		t.Fatalf("expected quantity 9, got %+v", orders)
	}
	if math.Abs(orders[0].Amount-900) > 1e-9 {
		t.Errorf("expected amount 900, got %v", orders[0].Amount)
	}
}
