package models

import "time"

// Tax model names accepted by Params.TaxModel.
const (
	TaxStandard = "standard" // 2% capped at 5,000,000
	TaxLegacy   = "legacy"   // 1% uncapped
	TaxNone     = "none"
)

// Params are the evaluation knobs. Zero values are not usable; callers
// should start from DefaultParams.
type Params struct {
	Bank           int64         // gp allocated across all slots
	Slots          int           // concurrent flips budgeted for
	MinVolume24h   int64         // volume floor, enforced only when a signal exists
	Aggressiveness float64       // price shaping factor in [0, 0.5]
	MinProfitUnit  int64         // minimum after-tax profit per unit
	TaxModel       string        // standard | legacy | none
	RuneCost       int64         // nature rune cost for the high-alch floor
	RequireHAFloor bool          // drop candidates without an alch-safe buy
	MaxAge         time.Duration // staleness threshold for latest quotes
	MaxDeviation   float64       // allowed drift of shaped prices vs latest
}

// DefaultParams mirrors the long-standing CLI defaults.
func DefaultParams() Params {
	return Params{
		Bank:           10_000_000,
		Slots:          5,
		MinVolume24h:   20_000,
		Aggressiveness: 0.15,
		MinProfitUnit:  5,
		TaxModel:       TaxStandard,
		RuneCost:       180,
		MaxAge:         30 * time.Minute,
		MaxDeviation:   0.20,
	}
}
