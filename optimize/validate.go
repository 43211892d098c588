package optimize

import (
	"math"

	"github.com/katalvlaran/mixpath/mixgraph"
)

// durationScale converts seconds into the integer units the search compares.
const durationScale = 100

// Validate checks Options in isolation.
func (o Options) Validate() error {
	if o.TempoTolerance < 0 || math.IsNaN(o.TempoTolerance) {
		return ErrBadTolerance
	}
	if !(o.MaxViolationPct >= 0 && o.MaxViolationPct <= 1) {
		return ErrBadViolationPct
	}
	if math.IsNaN(o.MaxDuration) || math.IsInf(o.MaxDuration, 0) {
		return ErrBadDuration
	}
	if !(o.EnergyWeight >= 0) || math.IsInf(o.EnergyWeight, 0) {
		return ErrBadEnergyWeight
	}
	if o.MaxEnergyStep < 0 {
		return ErrBadEnergyStep
	}
	if o.TimeLimit <= 0 {
		return ErrBadTimeLimit
	}
	if o.BaseWeight < 1 {
		return ErrBadBaseWeight
	}
	if !o.HarmonicLevel.Valid() {
		return ErrUnknownLevel
	}

	return nil
}

// graphOptions projects the edge-relevant part of Options.
func (o Options) graphOptions() mixgraph.Options {
	return mixgraph.Options{
		TempoTolerance:    o.TempoTolerance,
		AllowHalftime:     o.AllowHalftime,
		Level:             o.HarmonicLevel,
		EnforceEnergyFlow: o.EnforceEnergyFlow,
		MaxEnergyStep:     o.MaxEnergyStep,
	}
}

// ViolationLimit returns how many non-harmonic transitions a playlist drawn
// from n tracks may contain: 0 when pct is 0, otherwise max(1, ⌊n·pct⌋).
func ViolationLimit(n int, pct float64) int {
	if pct <= 0 {
		return 0
	}
	limit := int(float64(n) * pct)
	if limit < 1 {
		return 1
	}

	return limit
}

// scaledDuration truncates seconds to hundredths.
func scaledDuration(seconds float64) int64 {
	return int64(seconds * durationScale)
}
