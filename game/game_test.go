package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/systems"
	"github.com/pthm-cable/basin/telemetry"
)

func newHeadlessGame(t *testing.T, cfg *config.Config, opts Options) *Game {
	t.Helper()
	opts.Headless = true
	opts.Config = cfg
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

func TestHeadlessGame_StartsRunning(t *testing.T) {
	g := newHeadlessGame(t, config.Default(), Options{Seed: 7})

	if g.Session().State() != StateRunning {
		t.Fatalf("headless game should start running, got %s", g.Session().State())
	}
	if !g.autoplay {
		t.Error("headless game should be driven by the autopilot")
	}
}

func TestHeadlessGame_AutopilotKeepsPlantAlive(t *testing.T) {
	cfg := config.Default()
	g := newHeadlessGame(t, cfg, Options{Seed: 42, StepsPerUpdate: 60})

	// One minute of play covers at least one retarget and one mineral drop
	for i := 0; i < 60 && !g.Done(); i++ {
		g.UpdateHeadless()
	}

	if o, done := g.Session().Outcome(); done && !o.IsVictory {
		t.Fatalf("autopilot lost the plant after %.1fs: %s", o.Elapsed, o.Cause)
	}
	if g.drops == 0 {
		t.Error("expected the autopilot to feed minerals")
	}
	if math.Abs(g.SimTime()-60) > 0.01 {
		t.Errorf("expected 60s of play, got %f", g.SimTime())
	}
}

func TestHeadlessGame_DTClamp(t *testing.T) {
	cfg := config.Default()
	g := newHeadlessGame(t, cfg, Options{Seed: 1})

	// A long frame only simulates max_dt
	g.step(5, false)

	if e := g.Session().Plant().Growth().Elapsed; math.Abs(e-cfg.Session.MaxDT) > 1e-9 {
		t.Errorf("expected %f simulated, got %f", cfg.Session.MaxDT, e)
	}
	if g.Tick() != 1 {
		t.Errorf("expected 1 tick, got %d", g.Tick())
	}
}

func TestHeadlessGame_PausedStepKeepsClock(t *testing.T) {
	g := newHeadlessGame(t, config.Default(), Options{Seed: 3})
	th := g.Session().Plant().Thermo()
	remaining := th.Retarget.Remaining

	g.Session().SetPaused(true)
	g.step(0.05, false)

	if g.Tick() != 0 {
		t.Error("paused step should not tick the simulation")
	}
	if math.Abs(th.Retarget.Remaining-(remaining-0.05)) > 1e-9 {
		t.Errorf("retarget clock should run while paused: %f -> %f", remaining, th.Retarget.Remaining)
	}
}

func TestHeadlessGame_OutcomeWritten(t *testing.T) {
	cfg := config.Default()
	cfg.Session.GrowthTarget = 2
	dir := t.TempDir()

	var stats []telemetry.WindowStats
	var outcomes []Outcome
	g := NewGameWithOptions(Options{
		Seed:            11,
		Headless:        true,
		StepsPerUpdate:  60,
		OutputDir:       dir,
		Config:          cfg,
		StatsCallback:   func(s telemetry.WindowStats) { stats = append(stats, s) },
		OutcomeCallback: func(o Outcome) { outcomes = append(outcomes, o) },
	})

	for i := 0; i < 10 && !g.Done(); i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if len(outcomes) != 1 || !outcomes[0].IsVictory {
		t.Fatalf("expected one victory, got %+v", outcomes)
	}
	// The short session still flushes its partial window
	if len(stats) != 1 || stats[0].SessionID != outcomes[0].SessionID {
		t.Fatalf("expected one window for the session, got %d", len(stats))
	}

	f, err := os.Open(filepath.Join(dir, "outcomes.csv"))
	if err != nil {
		t.Fatalf("open outcomes: %v", err)
	}
	defer f.Close()
	recs, err := telemetry.ReadOutcomes(f)
	if err != nil {
		t.Fatalf("read outcomes: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 outcome record, got %d", len(recs))
	}
	r := recs[0]
	if r.Seed != 11 || !r.Victory || r.Cause != systems.CauseVictory.String() {
		t.Errorf("unexpected record %+v", r)
	}
	if r.EndTick != g.Tick() {
		t.Errorf("end tick %d, want %d", r.EndTick, g.Tick())
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config not written: %v", err)
	}
}

func TestHeadlessGame_RestartAndStart(t *testing.T) {
	cfg := config.Default()
	cfg.Session.GrowthTarget = 1
	g := newHeadlessGame(t, cfg, Options{Seed: 5, StepsPerUpdate: 120})

	g.UpdateHeadless()
	if !g.Done() {
		t.Fatal("session should have matured")
	}
	g.mineralDrag.Begin(1, 1)

	if !g.restartSession() {
		t.Fatal("restart should succeed from terminal")
	}
	if g.mineralDrag.Active() {
		t.Error("restart should drop the carried clump")
	}
	if !g.startSession() {
		t.Fatal("start after restart should succeed")
	}
	if g.SimTime() != 0 || g.drops != 0 {
		t.Error("session counters should reset on start")
	}
}

func TestLayout_HitTests(t *testing.T) {
	l := NewLayout(1000, 500)

	if !l.InBasin(l.Basin.X+1, l.Basin.Y+1) {
		t.Error("point inside basin not detected")
	}
	if l.InBasin(l.Basin.X-1, l.Basin.Y) {
		t.Error("point left of basin detected")
	}
	if !l.InSack(l.Sack.X+l.Sack.Width/2, l.Sack.Y+l.Sack.Height/2) {
		t.Error("sack center not detected")
	}
	if l.InSack(l.Basin.X+1, l.Basin.Y+1) {
		t.Error("basin point detected as sack")
	}
}

func TestAutopilot_IdleDoesNothing(t *testing.T) {
	cfg := config.Default()
	s, water, temp := newTestSession(cfg)
	a := NewAutopilot(cfg.Autopilot, s, water, temp, nil)

	if acts := a.Update(1); acts != (AutopilotActions{}) {
		t.Errorf("idle autopilot acted: %+v", acts)
	}
}

func TestAutopilot_SteersDials(t *testing.T) {
	cfg := config.Default()
	s, water, temp := newTestSession(cfg)
	a := NewAutopilot(cfg.Autopilot, s, water, temp, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	acts := a.Update(cfg.Autopilot.ReactionTime)
	if acts.DialMoves == 0 {
		t.Fatal("expected the water dial to move")
	}

	w := s.Plant().Water()
	supply := w.ConsumptionRate + w.ConsumptionGrowth*cfg.Autopilot.WaterLead +
		cfg.Autopilot.WaterGain*(cfg.Derived.WaterMid-w.Quantity)
	if got := s.Tank().Output(); math.Abs(got-supply) > 0.01 {
		t.Errorf("tank output %f, want about %f", got, supply)
	}
	if water.Dragging() || temp.Dragging() {
		t.Error("autopilot should release the dials")
	}

	// Within the reaction time nothing happens
	if acts := a.Update(cfg.Autopilot.ReactionTime / 2); acts.DialMoves != 0 {
		t.Error("autopilot reacted before its reaction time")
	}
}
