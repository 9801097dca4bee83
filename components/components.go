// Package components defines ECS components for the basin simulation.
package components

// PoolKind identifies which resource a pool holds.
type PoolKind uint8

const (
	PoolWater PoolKind = iota
	PoolMinerals
)

// String returns the kind name.
func (k PoolKind) String() string {
	switch k {
	case PoolWater:
		return "water"
	case PoolMinerals:
		return "minerals"
	default:
		return "unknown"
	}
}

// Growth is the decorative maturity proxy of the plant.
// It depends only on elapsed playing time, never on pool values.
type Growth struct {
	Elapsed float64 // Seconds of playing time
	Target  float64 // Seconds until mature (0 = never)
	Base    float64 // Visible scale at Elapsed=0
	Rate    float64 // Visible scale gained per second
}

// Scale returns the visible size of the plant.
func (g Growth) Scale() float64 {
	return g.Base + g.Rate*g.Elapsed
}

// Mature reports whether the growth target has been reached.
func (g Growth) Mature() bool {
	return g.Target > 0 && g.Elapsed >= g.Target
}

// Progress returns Elapsed/Target clamped to [0, 1].
func (g Growth) Progress() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Elapsed / g.Target
	if p > 1 {
		return 1
	}
	return p
}
