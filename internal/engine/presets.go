package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownPreset indicates a preset name outside the fixed set.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset names.
const (
	PresetSafe     = "safe"
	PresetBalanced = "balanced"
	PresetGrowth   = "growth"
)

// Preset is a named target allocation plus the sweep floor that goes with it.
// Every preset's weights sum to exactly 100.
type Preset struct {
	Name           string       `json:"name"`
	Allocations    []Allocation `json:"allocations"`
	MinSweepAmount float64      `json:"min_sweep_amount"`
}

// presets holds the fixed preset table, from capital preservation to equity
// heavy. Symbols are NSE ETFs.
var presets = []Preset{
	{
		Name: PresetSafe,
		Allocations: []Allocation{
			{Symbol: "LIQUIDBEES", WeightPct: 60},
			{Symbol: "GOLDBEES", WeightPct: 40},
		},
		MinSweepAmount: 50,
	},
	{
		Name: PresetBalanced,
		Allocations: []Allocation{
			{Symbol: "NIFTYBEES", WeightPct: 50},
			{Symbol: "GOLDBEES", WeightPct: 30},
			{Symbol: "LIQUIDBEES", WeightPct: 20},
		},
		MinSweepAmount: 100,
	},
	{
		Name: PresetGrowth,
		Allocations: []Allocation{
			{Symbol: "NIFTYBEES", WeightPct: 70},
			{Symbol: "GOLDBEES", WeightPct: 30},
		},
		MinSweepAmount: 100,
	},
}

// Presets returns the full preset table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = clonePreset(p)
	}
	return out
}

// PresetByName looks up a preset by its name.
func PresetByName(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return clonePreset(p), nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// ValidPresetName reports whether name is one of the named presets.
func ValidPresetName(name string) bool {
	_, err := PresetByName(name)
	return err == nil
}

// NewPresetSweeper builds a Sweeper from a named preset.
func NewPresetSweeper(name string) (*Sweeper, error) {
	p, err := PresetByName(name)
	if err != nil {
		return nil, err
	}
	return NewSweeper(p.Allocations, p.MinSweepAmount)
}

func clonePreset(p Preset) Preset {
	allocs := make([]Allocation, len(p.Allocations))
	copy(allocs, p.Allocations)
	p.Allocations = allocs
	return p
}
