package game

import (
	"log/slog"

	"github.com/pthm-cable/basin/audio"
	"github.com/pthm-cable/basin/telemetry"
)

// recordSample feeds the collector one reading of the plant.
func (g *Game) recordSample() {
	p := g.session.Plant()
	w := p.Water()
	th := p.Thermo()
	g.collector.Record(telemetry.Sample{
		Water:     w.Quantity,
		Minerals:  p.Minerals().Quantity,
		TempDiff:  th.Difference(),
		Desired:   th.Desired,
		WaterRate: w.ConsumptionRate,
		Supply:    w.SupplyRate,
		Warned:    g.warned,
		Growth:    p.Growth().Progress(),
	})
}

// flushTelemetry flushes the stats window once it is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}
	g.flushWindow()
}

// flushWindow writes out the current window and checks it for bookmarks.
func (g *Game) flushWindow() {
	if !g.collector.Pending() {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// handleOutcome runs inside Session.Tick when the session ends.
func (g *Game) handleOutcome(o Outcome) {
	if o.IsVictory {
		g.cues.Play(audio.CueVictory)
	} else {
		g.cues.Play(audio.CueDeath)
	}

	p := g.session.Plant()
	rec := telemetry.OutcomeRecord{
		SessionID:    o.SessionID,
		Seed:         g.rngSeed,
		Cause:        o.Cause.String(),
		Victory:      o.IsVictory,
		Message:      o.Message,
		EndTick:      g.tick + 1, // the finishing tick is counted after Tick returns
		SimTimeSec:   o.Elapsed,
		Water:        p.Water().Quantity,
		Minerals:     p.Minerals().Quantity,
		TempDiff:     p.Thermo().Difference(),
		MineralDrops: g.drops,
	}
	if g.logStats {
		slog.Info("outcome", "record", rec)
	}
	if g.outputManager != nil {
		if err := g.outputManager.WriteOutcome(rec); err != nil {
			slog.Error("failed to write outcome", "error", err)
		}
	}

	if g.outcomeCallback != nil {
		g.outcomeCallback(o)
	}
}
