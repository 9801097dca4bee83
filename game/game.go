package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/basin/audio"
	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/input"
	"github.com/pthm-cable/basin/telemetry"
	"github.com/pthm-cable/basin/ui"
)

// bookmarkHistory is how many windows the bookmark detector remembers.
const bookmarkHistory = 10

// Options configures game creation.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	StepsPerUpdate int
	Audio          bool           // Play cues through the speaker (graphical mode only)
	Autoplay       bool           // Let the autopilot drive the controls in graphical mode
	Config         *config.Config // nil = config.Cfg()

	StatsCallback   func(telemetry.WindowStats)
	OutcomeCallback func(Outcome)
}

// Game wires one session to its controls, telemetry and front-end.
type Game struct {
	cfg     *config.Config
	rng     *rand.Rand
	rngSeed int64

	session     *Session
	waterDial   *input.Dial
	tempDial    *input.Dial
	mineralDrag *input.MineralDrag
	autopilot   *Autopilot
	layout      Layout

	// State
	tick           int32   // Simulation ticks across all sessions
	simTime        float64 // Playing time of the current session
	sessionStart   int32   // Tick the current session started at
	drops          int     // Mineral drops in the current session
	warned         bool
	headless       bool
	autoplay       bool
	stepsPerUpdate int

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	statsCallback    func(telemetry.WindowStats)
	outcomeCallback  func(Outcome)
	logStats         bool

	// Front-end
	cues      *audio.Cues
	hud       *ui.HUD
	perf      *ui.PerfPanel
	inspector *ui.Inspector
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry
}

// NewGame creates a graphical game with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42, Audio: true})
}

// NewGameWithOptions creates a new game with the specified options.
// Headless games start their session immediately under the autopilot.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	g := &Game{
		cfg:              cfg,
		rng:              rng,
		rngSeed:          opts.Seed,
		layout:           NewLayout(float32(cfg.Screen.Width), float32(cfg.Screen.Height)),
		headless:         opts.Headless,
		autoplay:         opts.Autoplay || opts.Headless,
		stepsPerUpdate:   stepsPerUpdate,
		collector:        telemetry.NewCollector(statsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(bookmarkHistory),
		statsCallback:    opts.StatsCallback,
		outcomeCallback:  opts.OutcomeCallback,
		logStats:         opts.LogStats,
	}

	g.session = NewSession(cfg, rng)
	g.waterDial = input.NewDial(cfg.Dials.Water, float64(g.layout.WaterDial.X), float64(g.layout.WaterDial.Y), g.session.Tank())
	g.tempDial = input.NewDial(cfg.Dials.Temperature, float64(g.layout.TempDial.X), float64(g.layout.TempDial.Y), g.session.Thermostat())
	g.session.AddDial(g.waterDial)
	g.session.AddDial(g.tempDial)
	g.mineralDrag = input.NewMineralDrag(cfg.MineralDrag.PerDrop, g.session)
	g.autopilot = NewAutopilot(cfg.Autopilot, g.session, g.waterDial, g.tempDial, g.mineralDrag)
	g.session.OnOutcome(g.handleOutcome)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		if opts.Audio {
			cues, err := audio.NewCues(cfg.Audio)
			if err != nil {
				slog.Warn("audio unavailable", "error", err)
			}
			g.cues = cues
		}
		g.hud = ui.NewHUD()
		g.overlays = ui.NewOverlayRegistry()
		g.perf = ui.NewPerfPanel(int32(cfg.Screen.Width)-230, 10)
		g.inspector = ui.NewInspector(10, 150, 300)
		g.controls = ui.NewControlsPanel(int32(cfg.Screen.Width)-230, 200, 220)
	} else {
		g.startSession()
	}

	return g
}

// Update handles one graphical frame: input, then one simulation step of
// the frame's real duration per configured step.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	frameDt := float64(rl.GetFrameTime())
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(frameDt, i == 0)
	}
}

// UpdateHeadless runs StepsPerUpdate fixed steps without graphics.
func (g *Game) UpdateHeadless() {
	dt := g.fixedDT()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(dt, false)
		if g.session.State() == StateTerminal {
			return
		}
	}
}

// fixedDT is the headless frame duration.
func (g *Game) fixedDT() float64 {
	if fps := g.cfg.Screen.TargetFPS; fps > 0 {
		return 1 / float64(fps)
	}
	return 1.0 / 60.0
}

// step advances the retarget clock by the frame time, then simulates at most
// session.max_dt of it. Input is polled first when poll is set.
func (g *Game) step(frameDt float64, poll bool) {
	g.perfCollector.StartTick()
	defer g.perfCollector.EndTick()

	if poll {
		g.perfCollector.StartPhase(telemetry.PhaseInput)
		g.handleInput()
	}

	g.perfCollector.StartPhase(telemetry.PhaseRetarget)
	if n := g.session.AdvanceClock(frameDt); n > 0 {
		g.collector.RecordRetargets(n)
	}

	if g.session.State() != StateRunning || g.session.Paused() {
		return
	}
	dt := min(frameDt, g.cfg.Session.MaxDT)

	g.perfCollector.StartPhase(telemetry.PhaseDials)
	if g.autoplay {
		acts := g.autopilot.Update(dt)
		for range acts.DialMoves {
			g.collector.RecordDialMove()
		}
		for range acts.Drops {
			g.recordDrop()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhasePools)
	report := g.session.Tick(dt)
	g.tick++
	g.simTime += dt * g.session.TimeScale()

	g.perfCollector.StartPhase(telemetry.PhaseEvaluate)
	g.warned = len(report.Warnings) > 0
	if g.warned && !report.Cause.Terminal() {
		g.cues.Play(audio.CueWarning)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.logPlantState()
	g.recordSample()
	if g.session.State() == StateTerminal {
		g.flushWindow()
	} else {
		g.flushTelemetry()
	}
}

// startSession starts the session and opens a fresh telemetry window.
func (g *Game) startSession() bool {
	if err := g.session.Start(); err != nil {
		slog.Error("failed to start session", "error", err)
		return false
	}
	g.simTime = 0
	g.sessionStart = g.tick
	g.drops = 0
	g.warned = false
	g.collector.Reset(g.session.ID(), g.tick, 0)
	g.bookmarkDetector.Reset()
	return true
}

// restartSession returns a finished session to Idle.
func (g *Game) restartSession() bool {
	g.mineralDrag.Cancel()
	return g.session.Restart()
}

// recordDrop counts a mineral drop that reached the basin.
func (g *Game) recordDrop() {
	g.drops++
	g.collector.RecordMineralDrop()
	g.cues.Play(audio.CueDrop)
}

// Tick returns the number of simulation ticks run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the playing time of the current session.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Session returns the game's session.
func (g *Game) Session() *Session {
	return g.session
}

// Done reports whether the current session has ended.
func (g *Game) Done() bool {
	return g.session.State() == StateTerminal
}

// Unload releases audio and flushes output files.
func (g *Game) Unload() {
	g.cues.Close()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
