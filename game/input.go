package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/basin/input"
)

// Time scale limits for the < > keys.
const (
	minTimeScale = 0.25
	maxTimeScale = 4.0
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	switch g.session.State() {
	case StateIdle:
		if rl.IsKeyPressed(rl.KeyEnter) {
			g.startSession()
		}
	case StateRunning:
		if rl.IsKeyPressed(rl.KeySpace) {
			g.session.SetPaused(!g.session.Paused())
		}
	case StateTerminal:
		if rl.IsKeyPressed(rl.KeyEnter) {
			g.restartSession()
		}
	}

	// Time scale with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.session.SetTimeScale(max(g.session.TimeScale()/2, minTimeScale))
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.session.SetTimeScale(min(g.session.TimeScale()*2, maxTimeScale))
	}

	if rl.IsKeyPressed(rl.KeyA) {
		g.autoplay = !g.autoplay
		g.releaseControls()
	}
	for _, desc := range g.overlays.All() {
		if rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}

	if !g.autoplay {
		g.handleMouse()
	}
}

// handleMouse drives the dials and the mineral clump.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)
	radius := float64(g.layout.DialRadius)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && g.session.State() == StateRunning {
		switch {
		case g.waterDial.Contains(mx, my, radius):
			g.waterDial.BeginDrag(mx, my)
		case g.tempDial.Contains(mx, my, radius):
			g.tempDial.BeginDrag(mx, my)
		case g.layout.InSack(mouse.X, mouse.Y):
			g.mineralDrag.Begin(mx, my)
		}
	}

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		for _, d := range g.dials() {
			if d.Dragging() {
				d.Drag(mx, my)
			}
		}
		g.mineralDrag.Move(mx, my)
	}

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		for _, d := range g.dials() {
			if d.Dragging() {
				d.EndDrag()
				g.collector.RecordDialMove()
			}
		}
		if g.mineralDrag.Drop(g.layout.InBasin(mouse.X, mouse.Y)) {
			g.recordDrop()
		}
	}

	// A dial disabled mid-gesture has already dropped its drag; the clump goes too.
	if g.session.State() != StateRunning {
		g.mineralDrag.Cancel()
	}
}

// releaseControls ends any gesture in progress.
func (g *Game) releaseControls() {
	for _, d := range g.dials() {
		d.EndDrag()
	}
	g.mineralDrag.Cancel()
}

func (g *Game) dials() [2]*input.Dial {
	return [2]*input.Dial{g.waterDial, g.tempDial}
}

// handleResize recomputes the layout when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.layout.Width && h == g.layout.Height {
		return
	}
	g.layout = NewLayout(w, h)
	g.waterDial.PivotX, g.waterDial.PivotY = float64(g.layout.WaterDial.X), float64(g.layout.WaterDial.Y)
	g.tempDial.PivotX, g.tempDial.PivotY = float64(g.layout.TempDial.X), float64(g.layout.TempDial.Y)
	g.perf.SetPosition(int32(w)-230, 10)
	g.controls.SetPosition(int32(w)-230, 200)
}
