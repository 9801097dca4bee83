package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/basin/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title     string
	State     string
	SessionID string
	Elapsed   float64 // Seconds of playing time
	Growth    float64 // Progress toward maturity [0, 1]
	TimeScale float64
	Tick      int32
	FPS       int32
	Paused    bool
	Autoplay  bool
	Warnings  string
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	session := data.SessionID
	if len(session) > 8 {
		session = session[:8]
	}
	rl.DrawText(
		fmt.Sprintf("State: %s | Session: %s | Time: %.1fs | Speed: %.2gx | FPS: %d",
			data.State, session, data.Elapsed, data.TimeScale, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	h.renderer.DrawBar(10, 55, "Growth", float32(data.Growth), 300)

	y := int32(78)
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
		y += 20
	}
	if data.Autoplay {
		rl.DrawText("AUTOPILOT", 10, y, 16, rl.SkyBlue)
		y += 20
	}
	if data.Warnings != "" {
		rl.DrawText(data.Warnings, 10, y, 20, rl.Orange)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	p.renderer.DrawPanel(x-8, y-6, 228, 60+int32(len(stats.PhaseAvg))*14)

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 16

	for _, name := range sortedPhases(stats) {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// sortedPhases returns phase names sorted by average duration (descending).
func sortedPhases(stats telemetry.PerfStats) []string {
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := stats.PhaseAvg[names[i]], stats.PhaseAvg[names[j]]
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}
