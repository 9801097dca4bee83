package components

import "fmt"

// Bounds holds the two-tier thresholds of a pool in quantity units.
// A valid Bounds satisfies MinHard <= MinWarn <= MaxWarn <= MaxHard.
type Bounds struct {
	MinHard float64
	MinWarn float64
	MaxWarn float64
	MaxHard float64
}

// Validate returns an error if the thresholds are out of order.
func (b Bounds) Validate() error {
	if b.MinHard <= b.MinWarn && b.MinWarn <= b.MaxWarn && b.MaxWarn <= b.MaxHard {
		return nil
	}
	return fmt.Errorf("bounds out of order: min_hard=%g min_warn=%g max_warn=%g max_hard=%g",
		b.MinHard, b.MinWarn, b.MaxWarn, b.MaxHard)
}

// Pool is a scalar resource with an external supply and an accelerating drain.
// Quantity is never clamped here; bound checks belong to the survival evaluation.
type Pool struct {
	Kind              PoolKind
	Quantity          float64
	ConsumptionRate   float64 // Current drain per second
	ConsumptionGrowth float64 // Increase of ConsumptionRate per second (0 = constant drain)
	SupplyRate        float64 // Supply per second, set by an adjustable source
	Bounds            Bounds
}
