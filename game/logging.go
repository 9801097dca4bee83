package game

import (
	"context"
	"log/slog"
)

// stateLogInterval is how many ticks pass between plant state debug logs.
const stateLogInterval = 60

// logPlantState logs the full plant state at debug level every stateLogInterval ticks.
func (g *Game) logPlantState() {
	if g.tick%stateLogInterval != 0 || !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	p := g.session.Plant()
	w, m, th := p.Water(), p.Minerals(), p.Thermo()
	slog.Debug("plant_state",
		"session", g.session.ID(),
		"tick", g.tick,
		"sim_time", g.simTime,
		slog.Group("water",
			"quantity", w.Quantity,
			"consumption", w.ConsumptionRate,
			"supply", w.SupplyRate,
		),
		slog.Group("minerals",
			"quantity", m.Quantity,
			"consumption", m.ConsumptionRate,
		),
		slog.Group("temperature",
			"current", th.Current,
			"desired", th.Desired,
			"target", th.TargetDesired,
			"next_retarget", th.Retarget.Remaining,
		),
		"warnings", g.session.Report().WarningText(),
		"dials", []float64{g.waterDial.Value(), g.tempDial.Value()},
	)
}
