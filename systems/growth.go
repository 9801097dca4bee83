package systems

import "github.com/pthm-cable/basin/components"

// UpdateGrowth accumulates playing time on the plant's growth proxy.
func UpdateGrowth(g *components.Growth, dt float64) {
	if dt <= 0 {
		return
	}
	g.Elapsed += dt
}
