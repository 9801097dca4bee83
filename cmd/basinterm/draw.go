package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/basin/game"
	"github.com/pthm-cable/basin/input"
	"github.com/pthm-cable/basin/systems"
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWarn    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDead    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleWater   = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleHeat    = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	stylePlant   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSack    = tcell.StyleDefault.Foreground(tcell.ColorTan)
	styleMercury = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (t *term) draw() {
	t.screen.Clear()

	t.drawStatus()
	t.drawDial(t.waterDial, t.layout.WaterDial, "WATER", styleWater)
	t.drawDial(t.tempDial, t.layout.TempDial, "HEAT", styleHeat)
	t.drawBasin()
	t.drawThermometer()
	t.drawSack()
	t.drawBanner()

	t.screen.Show()
}

func (t *term) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *term) box(r rect, style tcell.Style) {
	for x := r.X; x < r.X+r.W; x++ {
		t.screen.SetContent(x, r.Y, '─', nil, style)
		t.screen.SetContent(x, r.Y+r.H-1, '─', nil, style)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		t.screen.SetContent(r.X, y, '│', nil, style)
		t.screen.SetContent(r.X+r.W-1, y, '│', nil, style)
	}
	t.screen.SetContent(r.X, r.Y, '┌', nil, style)
	t.screen.SetContent(r.X+r.W-1, r.Y, '┐', nil, style)
	t.screen.SetContent(r.X, r.Y+r.H-1, '└', nil, style)
	t.screen.SetContent(r.X+r.W-1, r.Y+r.H-1, '┘', nil, style)
}

func (t *term) drawStatus() {
	s := t.session
	g := s.Plant().Growth()
	status := fmt.Sprintf("Hydroponic Basin  [%s]  %.0fs  growth %3.0f%%  speed %.2gx",
		s.State(), g.Elapsed, g.Progress()*100, s.TimeScale())
	if s.Paused() {
		status += "  PAUSED"
	}
	t.text(1, 0, status, styleText)
	t.text(1, t.layout.Height-1, "[Enter] start/restart  [Space] pause  [,.] speed  [q] quit", styleDim)

	if w := s.Report().WarningText(); w != "" && s.State() == game.StateRunning {
		t.text(1, 1, w, styleWarn)
	}
}

// drawDial draws the sweep as dots and the needle as a line of blocks. Angle 0 points up.
func (t *term) drawDial(d *input.Dial, pivot [2]int, label string, style tcell.Style) {
	if !d.Enabled() {
		style = styleDim
	}
	r := float64(t.layout.DialRadius)
	cell := func(deg, dist float64) (int, int) {
		a := (deg - 90) * math.Pi / 180
		x := float64(pivot[0]) + dist*math.Cos(a)
		y := float64(pivot[1]) + dist*math.Sin(a)/cellAspect
		return int(math.Round(x)), int(math.Round(y))
	}

	for deg := d.MinAngle; deg <= d.MaxAngle; deg += 15 {
		x, y := cell(deg, r)
		t.screen.SetContent(x, y, '·', nil, styleDim)
	}
	needle := '█'
	if d.Dragging() {
		needle = '▓'
	}
	for dist := 1.0; dist <= r-1; dist++ {
		x, y := cell(d.Angle(), dist)
		t.screen.SetContent(x, y, needle, nil, style)
	}
	t.screen.SetContent(pivot[0], pivot[1], '●', nil, style)

	t.text(pivot[0]-len(label)/2, pivot[1]+t.layout.DialRadius/cellAspect+1, label, style)
	t.text(pivot[0]-2, pivot[1]+t.layout.DialRadius/cellAspect+2, fmt.Sprintf("%3.0f%%", d.Value()*100), styleDim)
}

func (t *term) drawBasin() {
	b := t.layout.Basin
	p := t.session.Plant()
	w := p.Water()

	t.box(b, styleText)
	level := 0.0
	if w.Bounds.MaxHard > 0 {
		level = systems.Clamp01(w.Quantity / w.Bounds.MaxHard)
	}
	rows := int(math.Round(level * float64(b.H-2)))
	for y := b.Y + b.H - 1 - rows; y < b.Y+b.H-1; y++ {
		for x := b.X + 1; x < b.X+b.W-1; x++ {
			t.screen.SetContent(x, y, '~', nil, styleWater)
		}
	}

	style := stylePlant
	if len(t.session.Report().Warnings) > 0 {
		style = styleWarn
	}
	if out, done := t.session.Outcome(); done && !out.IsVictory {
		style = styleDim
	}
	height := int(4 * p.Growth().Scale())
	cx := b.X + b.W/2
	for i := 1; i <= height && b.Y-i > 1; i++ {
		ch := '│'
		if i%2 == 0 {
			ch = '┼'
		}
		t.screen.SetContent(cx, b.Y-i, ch, nil, style)
	}
	if top := b.Y - height - 1; top > 1 {
		t.screen.SetContent(cx, top, '✿', nil, style)
	}

	m := p.Minerals()
	t.text(b.X, b.Y+b.H, fmt.Sprintf("water %.2f  minerals %.2f", w.Quantity, m.Quantity), styleDim)
}

func (t *term) drawThermometer() {
	r := t.layout.Thermometer
	th := t.session.Plant().Thermo()
	row := func(temp float64) int {
		f := systems.Clamp01((temp - th.MinTemp) / (th.MaxTemp - th.MinTemp))
		return r.Y + int(math.Round(float64(r.H-1)*(1-f)))
	}

	cur := row(th.Current)
	for y := r.Y; y < r.Y+r.H; y++ {
		ch := '░'
		style := styleDim
		if y >= cur {
			ch, style = '█', styleMercury
		}
		t.screen.SetContent(r.X+1, y, ch, nil, style)
	}
	want := row(th.Desired)
	t.screen.SetContent(r.X-1, want, '▶', nil, styleText)

	label := fmt.Sprintf("Target: %.1f°C", th.Desired)
	t.text(r.X+r.W-len([]rune(label)), r.Y-2, label, styleText)
}

func (t *term) drawSack() {
	t.box(t.layout.Sack, styleSack)
	t.text(t.layout.Sack.X+1, t.layout.Sack.Y+1, "MINERALS", styleSack)
	if t.minerals.Active() {
		x, y := t.minerals.Position()
		t.screen.SetContent(int(x), int(y)/cellAspect, '◆', nil, styleSack)
	}
}

// drawBanner shows the start prompt or the outcome in the middle of the screen.
func (t *term) drawBanner() {
	var lines []string
	style := styleText
	switch t.session.State() {
	case game.StateIdle:
		lines = []string{
			"Keep the plant alive until it is fully grown.",
			"Drag the dials with the mouse. Drag minerals from the sack into the basin.",
			"Press Enter to start.",
		}
	case game.StateTerminal:
		out, _ := t.session.Outcome()
		style = styleDead
		if out.IsVictory {
			style = styleWin
		}
		lines = []string{out.Message, fmt.Sprintf("Survived %.1f seconds", out.Elapsed), "Press Enter to play again."}
	default:
		return
	}

	y := t.layout.Height/3 - len(lines)/2
	for i, line := range lines {
		x := (t.layout.Width - len([]rune(line))) / 2
		t.text(x, y+i, line, style)
	}
}
