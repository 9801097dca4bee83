// Command basinterm plays the hydroponic basin in a terminal.
// Dials and the mineral sack are driven with the mouse.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/basin/audio"
	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/game"
	"github.com/pthm-cable/basin/input"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

type term struct {
	screen tcell.Screen
	cfg    *config.Config
	layout termLayout

	session   *game.Session
	waterDial *input.Dial
	tempDial  *input.Dial
	minerals  *input.MineralDrag
	cues      *audio.Cues

	mouseDown bool
	lastFrame time.Time
}

func newTerm(cfg *config.Config, seed int64, withAudio bool) (*term, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	t := &term{
		screen:    screen,
		cfg:       cfg,
		session:   game.NewSession(cfg, rand.New(rand.NewSource(seed))),
		lastFrame: time.Now(),
	}
	w, h := screen.Size()
	t.layout = newTermLayout(w, h)

	wx, wy := pointer(t.layout.WaterDial[0], t.layout.WaterDial[1])
	tx, ty := pointer(t.layout.TempDial[0], t.layout.TempDial[1])
	t.waterDial = input.NewDial(cfg.Dials.Water, wx, wy, t.session.Tank())
	t.tempDial = input.NewDial(cfg.Dials.Temperature, tx, ty, t.session.Thermostat())
	t.waterDial.DeadZone = 1
	t.tempDial.DeadZone = 1
	t.session.AddDial(t.waterDial)
	t.session.AddDial(t.tempDial)
	t.minerals = input.NewMineralDrag(cfg.MineralDrag.PerDrop, t.session)

	if withAudio {
		cues, err := audio.NewCues(cfg.Audio)
		if err != nil {
			// Non-fatal, the game runs without sound
			slog.Warn("audio unavailable", "error", err)
		}
		t.cues = cues
	}
	t.session.OnOutcome(func(o game.Outcome) {
		if o.IsVictory {
			t.cues.Play(audio.CueVictory)
		} else {
			t.cues.Play(audio.CueDeath)
		}
	})

	return t, nil
}

func (t *term) cleanup() {
	t.cues.Close()
	t.screen.Fini()
}

// step advances one frame of wall-clock time.
func (t *term) step() {
	now := time.Now()
	frameDt := now.Sub(t.lastFrame).Seconds()
	t.lastFrame = now

	t.session.AdvanceClock(frameDt)
	if t.session.State() != game.StateRunning || t.session.Paused() {
		return
	}
	r := t.session.Tick(min(frameDt, t.cfg.Session.MaxDT))
	if len(r.Warnings) > 0 && !r.Cause.Terminal() {
		t.cues.Play(audio.CueWarning)
	}
}

// handleInput returns false when the player quits.
func (t *term) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyEnter:
			t.startOrRestart()
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			if t.session.State() == game.StateRunning {
				t.session.SetPaused(!t.session.Paused())
			}
		case ev.Key() == tcell.KeyRune && ev.Rune() == ',':
			t.session.SetTimeScale(max(t.session.TimeScale()/2, 0.25))
		case ev.Key() == tcell.KeyRune && ev.Rune() == '.':
			t.session.SetTimeScale(min(t.session.TimeScale()*2, 4))
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		t.handleMouse(x, y, ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		t.handleResize()
	}
	return true
}

func (t *term) startOrRestart() {
	switch t.session.State() {
	case game.StateIdle:
		if err := t.session.Start(); err != nil {
			slog.Error("failed to start session", "error", err)
		}
	case game.StateTerminal:
		t.minerals.Cancel()
		t.session.Restart()
	}
}

// handleMouse turns button transitions into dial and mineral gestures.
func (t *term) handleMouse(x, y int, down bool) {
	px, py := pointer(x, y)
	pressed := down && !t.mouseDown
	released := !down && t.mouseDown
	t.mouseDown = down

	if t.session.State() != game.StateRunning {
		t.minerals.Cancel()
		return
	}

	switch {
	case pressed:
		switch {
		case t.layout.onDial(t.layout.WaterDial, x, y):
			t.waterDial.BeginDrag(px, py)
		case t.layout.onDial(t.layout.TempDial, x, y):
			t.tempDial.BeginDrag(px, py)
		case t.layout.Sack.contains(x, y):
			t.minerals.Begin(px, py)
		}
	case down:
		t.waterDial.Drag(px, py)
		t.tempDial.Drag(px, py)
		t.minerals.Move(px, py)
	case released:
		t.waterDial.EndDrag()
		t.tempDial.EndDrag()
		if t.minerals.Drop(t.layout.Basin.contains(x, y)) {
			t.cues.Play(audio.CueDrop)
		}
	}
}

func (t *term) handleResize() {
	t.screen.Sync()
	w, h := t.screen.Size()
	t.layout = newTermLayout(w, h)
	t.waterDial.PivotX, t.waterDial.PivotY = pointer(t.layout.WaterDial[0], t.layout.WaterDial[1])
	t.tempDial.PivotX, t.tempDial.PivotY = pointer(t.layout.TempDial[0], t.layout.TempDial[1])
}

// pollEvents forwards events until poll returns nil, which it does once the
// screen is finalized.
func pollEvents(poll func() tcell.Event, out chan<- tcell.Event) {
	for {
		ev := poll()
		out <- ev
		if ev == nil {
			return
		}
	}
}

func (t *term) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go pollEvents(t.screen.PollEvent, eventChan)

	for {
		select {
		case ev := <-eventChan:
			if ev == nil {
				return
			}
			if !t.handleInput(ev) {
				return
			}

		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (empty = discard)")
	noAudio := flag.Bool("no-audio", false, "Disable audio cues")
	flag.Parse()

	// The terminal owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	t, err := newTerm(cfg, rngSeed, cfg.Audio.Enabled && !*noAudio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer t.cleanup()

	t.run()
}
