package game

import (
	"math"

	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/input"
	"github.com/pthm-cable/basin/systems"
)

// dragRadius is how far from the pivot the autopilot grabs a dial.
const dragRadius = 40.0

// maxDragStep keeps each simulated drag well inside the shortest-path range.
const maxDragStep = 150.0

// AutopilotActions counts what one Update did.
type AutopilotActions struct {
	DialMoves int
	Drops     int
}

// Autopilot plays the session through the same gestures a player uses:
// it drags the dials and drops mineral clumps on the basin.
type Autopilot struct {
	cfg     config.AutopilotConfig
	session *Session

	water    *input.Dial
	temp     *input.Dial
	minerals *input.MineralDrag

	cooldown float64
}

// NewAutopilot creates an autopilot for the given controls.
func NewAutopilot(cfg config.AutopilotConfig, s *Session, water, temp *input.Dial, minerals *input.MineralDrag) *Autopilot {
	return &Autopilot{cfg: cfg, session: s, water: water, temp: temp, minerals: minerals}
}

// Update reacts to the plant every ReactionTime seconds of dt.
func (a *Autopilot) Update(dt float64) AutopilotActions {
	var acts AutopilotActions
	if a.session.State() != StateRunning {
		a.cooldown = 0
		return acts
	}
	a.cooldown -= dt
	if a.cooldown > 0 {
		return acts
	}
	a.cooldown = a.cfg.ReactionTime

	cfg := a.session.cfg
	p := a.session.Plant()

	// Water: match the drain, anticipate its growth, and pull toward the band middle
	w := p.Water()
	supply := w.ConsumptionRate + w.ConsumptionGrowth*a.cfg.WaterLead + a.cfg.WaterGain*(cfg.Derived.WaterMid-w.Quantity)
	tw := systems.InverseLerp(cfg.Tank.MaxOutput, cfg.Tank.MinOutput, supply)
	if a.steer(a.water, tw) {
		acts.DialMoves++
	}

	// Temperature: aim a little ahead of the drifting desired value
	th := p.Thermo()
	aim := th.Desired + a.cfg.TempLead*(th.TargetDesired-th.Desired)
	tt := systems.InverseLerp(th.MaxTemp, th.MinTemp, aim)
	if a.steer(a.temp, tt) {
		acts.DialMoves++
	}

	m := p.Minerals()
	low := cfg.Derived.MineralsMid - a.cfg.MineralMargin
	if a.minerals != nil && m.Quantity < low && m.Quantity+a.minerals.PerDrop <= m.Bounds.MaxWarn {
		a.minerals.Begin(0, 0)
		if a.minerals.Drop(true) {
			acts.Drops++
		}
	}
	return acts
}

// steer drags d until its output is t. Returns whether the dial moved.
func (a *Autopilot) steer(d *input.Dial, t float64) bool {
	if d == nil || !d.Enabled() {
		return false
	}
	target := d.MinAngle + systems.Clamp01(t)*(d.MaxAngle-d.MinAngle)
	if math.Abs(target-d.Angle()) < 0.5 {
		return false
	}

	for i := 0; i < 4 && math.Abs(target-d.Angle()) > 1e-6; i++ {
		from := d.Angle()
		step := systems.Clamp(target-from, -maxDragStep, maxDragStep)
		if !d.BeginDrag(pointerAt(d, from)) {
			return false
		}
		d.Drag(pointerAt(d, from+step))
		d.Update()
		d.EndDrag()
	}
	return true
}

// pointerAt returns a point on a circle around the dial pivot at deg.
func pointerAt(d *input.Dial, deg float64) (float64, float64) {
	r := deg * math.Pi / 180
	return d.PivotX + dragRadius*math.Cos(r), d.PivotY + dragRadius*math.Sin(r)
}
