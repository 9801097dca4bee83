package systems

import "github.com/pthm-cable/basin/components"

// PoolDelta reports what one update added to and removed from a pool.
type PoolDelta struct {
	Added    float64
	Consumed float64
}

// UpdatePool advances a pool by dt seconds.
// The drain first accelerates by ConsumptionGrowth, then supply is added and the
// (now higher) drain subtracted. Quantity is left unclamped.
func UpdatePool(p *components.Pool, dt float64) PoolDelta {
	if dt <= 0 {
		return PoolDelta{}
	}

	p.ConsumptionRate += p.ConsumptionGrowth * dt

	added := p.SupplyRate * dt
	consumed := p.ConsumptionRate * dt
	p.Quantity += added - consumed

	return PoolDelta{Added: added, Consumed: consumed}
}

// ApplyQuantity injects amount directly into a pool. Negative amounts remove.
func ApplyQuantity(p *components.Pool, amount float64) {
	p.Quantity += amount
}
