package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/basin/components"
	"github.com/pthm-cable/basin/input"
	"github.com/pthm-cable/basin/systems"
	"github.com/pthm-cable/basin/ui"
)

var (
	backgroundColor = rl.Color{R: 18, G: 22, B: 26, A: 255}
	basinColor      = rl.Color{R: 70, G: 80, B: 90, A: 255}
	waterColor      = rl.Color{R: 60, G: 130, B: 200, A: 200}
	sackColor       = rl.Color{R: 130, G: 95, B: 60, A: 255}
	clumpColor      = rl.Color{R: 190, G: 170, B: 120, A: 255}
	stemColor       = rl.Color{R: 70, G: 150, B: 70, A: 255}
	wiltColor       = rl.Color{R: 150, G: 140, B: 70, A: 255}
)

const controlsLegend = "[Enter] start/restart  [Space] pause  [<>] speed  [A] autopilot  [I] inspector  [B] bands  [Tab] perf  [H] help"

// Draw renders the game state.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawBasin()
	g.drawPlant()
	g.drawThermometer()
	g.drawDial(g.waterDial, g.layout.WaterDial, "WATER", rl.SkyBlue)
	g.drawDial(g.tempDial, g.layout.TempDial, "HEAT", rl.Orange)
	g.drawSack()

	g.drawUI()

	rl.EndDrawing()
}

// drawBasin draws the basin with its water level. Minerals tint the water.
func (g *Game) drawBasin() {
	b := g.layout.Basin
	p := g.session.Plant()
	w := p.Water()

	rl.DrawRectangleRec(b, basinColor)

	level := float32(0)
	if w.Bounds.MaxHard > 0 {
		level = float32(systems.Clamp(w.Quantity/w.Bounds.MaxHard, 0, 1))
	}
	fill := waterColor
	m := p.Minerals()
	if m.Bounds.MaxHard > 0 {
		tint := systems.Clamp(m.Quantity/m.Bounds.MaxHard, 0, 1)
		fill.G = uint8(130 + 60*tint)
	}
	h := (b.Height - 8) * level
	rl.DrawRectangleRec(rl.Rectangle{X: b.X + 4, Y: b.Y + b.Height - 4 - h, Width: b.Width - 8, Height: h}, fill)
	rl.DrawRectangleLinesEx(b, 3, rl.LightGray)
}

// drawPlant draws the plant above the basin, scaled by its growth.
func (g *Game) drawPlant() {
	b := g.layout.Basin
	p := g.session.Plant()
	scale := float32(p.Growth().Scale())

	color := stemColor
	if len(g.session.Report().Warnings) > 0 {
		color = wiltColor
	}
	if out, done := g.session.Outcome(); done && !out.IsVictory {
		color = rl.Gray
	}

	baseX := b.X + b.Width/2
	baseY := b.Y
	height := 60 * scale
	rl.DrawLineEx(rl.Vector2{X: baseX, Y: baseY + 10}, rl.Vector2{X: baseX, Y: baseY - height}, 4*scale, color)

	leaf := 12 * scale
	for i, side := range []float32{-1, 1, -1, 1} {
		y := baseY - height*float32(i+1)/5
		rl.DrawCircleV(rl.Vector2{X: baseX + side*leaf, Y: y}, leaf, color)
	}
	rl.DrawCircleV(rl.Vector2{X: baseX, Y: baseY - height}, leaf*1.1, color)
}

// drawThermometer draws the current temperature bar and the desired needle.
func (g *Game) drawThermometer() {
	r := g.layout.Thermometer
	th := g.session.Plant().Thermo()

	toY := func(temp float64) float32 {
		f := float32(systems.Clamp((temp-th.MinTemp)/(th.MaxTemp-th.MinTemp), 0, 1))
		return r.Y + r.Height*(1-f)
	}

	rl.DrawRectangleRec(r, rl.DarkGray)

	if g.overlays.IsEnabled(ui.OverlayBands) {
		hard := rl.Rectangle{X: r.X, Y: toY(th.Desired + th.HardBand), Width: r.Width}
		hard.Height = toY(th.Desired-th.HardBand) - hard.Y
		rl.DrawRectangleRec(hard, rl.Color{R: 200, G: 80, B: 80, A: 80})
		warn := rl.Rectangle{X: r.X, Y: toY(th.Desired + th.WarnBand), Width: r.Width}
		warn.Height = toY(th.Desired-th.WarnBand) - warn.Y
		rl.DrawRectangleRec(warn, rl.Color{R: 80, G: 200, B: 80, A: 90})
	}

	cy := toY(th.Current)
	rl.DrawRectangleRec(rl.Rectangle{X: r.X + 6, Y: cy, Width: r.Width - 12, Height: r.Y + r.Height - cy}, rl.Red)
	rl.DrawCircleV(rl.Vector2{X: r.X + r.Width/2, Y: r.Y + r.Height + 12}, r.Width*0.7, rl.Red)

	ny := toY(th.Desired)
	rl.DrawTriangle(
		rl.Vector2{X: r.X - 4, Y: ny},
		rl.Vector2{X: r.X - 16, Y: ny - 7},
		rl.Vector2{X: r.X - 16, Y: ny + 7},
		rl.White,
	)
	rl.DrawLineEx(rl.Vector2{X: r.X - 4, Y: ny}, rl.Vector2{X: r.X + r.Width + 4, Y: ny}, 2, rl.White)

	rl.DrawRectangleLinesEx(r, 2, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Target: %.1f°C", th.Desired), int32(r.X-40), int32(r.Y-28), 18, rl.White)
	rl.DrawText(fmt.Sprintf("%.0f°C", th.MaxTemp), int32(r.X+r.Width+6), int32(r.Y), 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("%.0f°C", th.MinTemp), int32(r.X+r.Width+6), int32(r.Y+r.Height-12), 12, rl.Gray)
}

// drawDial draws a dial knob. Angle 0 points up.
func (g *Game) drawDial(d *input.Dial, pivot rl.Vector2, label string, color rl.Color) {
	radius := g.layout.DialRadius

	face := rl.Color{R: 50, G: 55, B: 60, A: 255}
	if !d.Enabled() {
		face = rl.Color{R: 35, G: 38, B: 42, A: 255}
	}
	rl.DrawCircleV(pivot, radius, face)
	rl.DrawCircleSectorLines(pivot, radius+6, float32(d.MinAngle-90), float32(d.MaxAngle-90), 32, rl.Gray)

	a := (d.Angle() - 90) * math.Pi / 180
	tip := rl.Vector2{
		X: pivot.X + radius*0.85*float32(math.Cos(a)),
		Y: pivot.Y + radius*0.85*float32(math.Sin(a)),
	}
	width := float32(4)
	if d.Dragging() {
		width = 6
	}
	rl.DrawLineEx(pivot, tip, width, color)
	rl.DrawCircleV(pivot, 6, color)

	rl.DrawText(label, int32(pivot.X)-rl.MeasureText(label, 16)/2, int32(pivot.Y+radius+12), 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("%.0f%%", d.Value()*100), int32(pivot.X)-14, int32(pivot.Y+radius+30), 14, rl.Gray)
}

// drawSack draws the mineral sack and the clump being carried.
func (g *Game) drawSack() {
	s := g.layout.Sack
	rl.DrawRectangleRounded(s, 0.3, 6, sackColor)
	rl.DrawText("MINERALS", int32(s.X+8), int32(s.Y+s.Height/2-6), 14, rl.White)

	if g.mineralDrag.Active() {
		x, y := g.mineralDrag.Position()
		rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, 10, clumpColor)
	}
}

// drawUI draws the HUD, the state panels and the enabled overlays.
func (g *Game) drawUI() {
	w, h := int32(g.layout.Width), int32(g.layout.Height)
	p := g.session.Plant()

	g.hud.Draw(ui.HUDData{
		Title:     "Hydroponic Basin",
		State:     g.session.State().String(),
		SessionID: g.session.ID(),
		Elapsed:   p.Growth().Elapsed,
		Growth:    p.Growth().Progress(),
		TimeScale: g.session.TimeScale(),
		Tick:      g.tick,
		FPS:       rl.GetFPS(),
		Paused:    g.session.Paused(),
		Autoplay:  g.autoplay,
		Warnings:  g.session.Report().WarningText(),
	})

	switch g.session.State() {
	case StateIdle:
		if ui.InstructionsPanel(w, h) {
			g.startSession()
		}
	case StateRunning:
		if g.session.Paused() {
			scale := ui.TimeScaleSlider(10, float32(h)-60, float32(g.session.TimeScale()), minTimeScale, maxTimeScale)
			g.session.SetTimeScale(float64(scale))
		}
	case StateTerminal:
		out, _ := g.session.Outcome()
		if ui.GameOverPanel(w, h, out.Message, out.IsVictory, out.Elapsed) {
			g.restartSession()
		}
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) {
		g.inspector.Draw(g.inspectorData())
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perf.Draw(g.perfCollector.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayHelp) {
		g.controls.Draw(g.overlays)
	}

	g.hud.DrawControls(w, h, controlsLegend)
}

// inspectorData snapshots the plant for the inspector panel.
func (g *Game) inspectorData() ui.InspectorData {
	p := g.session.Plant()
	th := p.Thermo()
	return ui.InspectorData{
		Water:     poolData(p.Water()),
		Minerals:  poolData(p.Minerals()),
		Current:   float32(th.Current),
		Desired:   float32(th.Desired),
		Target:    float32(th.TargetDesired),
		WarnBand:  float32(th.WarnBand),
		HardBand:  float32(th.HardBand),
		NextIn:    float32(th.Retarget.Remaining),
		WaterDial: float32(g.waterDial.Value()),
		TempDial:  float32(g.tempDial.Value()),
	}
}

func poolData(p *components.Pool) ui.PoolData {
	return ui.PoolData{
		Quantity:    float32(p.Quantity),
		Consumption: float32(p.ConsumptionRate),
		Supply:      float32(p.SupplyRate),
		Bands: ui.Bands{
			MinHard: float32(p.Bounds.MinHard),
			MinWarn: float32(p.Bounds.MinWarn),
			MaxWarn: float32(p.Bounds.MaxWarn),
			MaxHard: float32(p.Bounds.MaxHard),
		},
	}
}
