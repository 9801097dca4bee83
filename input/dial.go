package input

import (
	"math"

	"github.com/pthm-cable/basin/config"
)

// Dial is a rotary control. Dragging it rotates the knob relative to where it
// was grabbed, and the clamped angle is forwarded as t in [0, 1].
type Dial struct {
	MinAngle float64
	MaxAngle float64

	// Pivot in screen coordinates.
	PivotX, PivotY float64

	// DeadZone is the radius around the pivot where pointer motion is ignored.
	DeadZone float64

	target  AdjustableResource
	initial float64
	angle   float64
	enabled bool

	dragging     bool
	hasRef       bool
	startPointer float64
	startAngle   float64
}

// NewDial creates a dial bound to target. A nil target leaves the dial unbound;
// callers check Bound before enabling it.
func NewDial(cfg config.DialConfig, pivotX, pivotY float64, target AdjustableResource) *Dial {
	initial := clampAngle(cfg.InitialAngle, cfg.MinAngle, cfg.MaxAngle)
	return &Dial{
		MinAngle: cfg.MinAngle,
		MaxAngle: cfg.MaxAngle,
		PivotX:   pivotX,
		PivotY:   pivotY,
		target:   target,
		initial:  initial,
		angle:    initial,
	}
}

// Bound reports whether the dial has a resource to drive.
func (d *Dial) Bound() bool {
	return d.target != nil
}

// Angle returns the knob rotation in degrees.
func (d *Dial) Angle() float64 {
	return d.angle
}

// SetAngle moves the knob without a gesture. The resource is not notified.
func (d *Dial) SetAngle(a float64) {
	d.angle = clampAngle(a, d.MinAngle, d.MaxAngle)
}

// Reset cancels any drag and returns the knob to its initial angle.
func (d *Dial) Reset() {
	d.EndDrag()
	d.angle = d.initial
}

// Value returns the normalized output for the current angle.
func (d *Dial) Value() float64 {
	span := d.MaxAngle - d.MinAngle
	if span <= 0 {
		return 0
	}
	t := (d.angle - d.MinAngle) / span
	return math.Max(0, math.Min(1, t))
}

// Sync pushes the current value to the bound resource.
func (d *Dial) Sync() {
	if d.target != nil {
		d.target.ApplyNormalizedValue(d.Value())
	}
}

// Enabled reports whether the dial accepts gestures.
func (d *Dial) Enabled() bool {
	return d.enabled
}

// SetEnabled turns gesture handling on or off. Disabling cancels an active drag.
func (d *Dial) SetEnabled(on bool) {
	d.enabled = on
	if !on {
		d.EndDrag()
	}
}

// Dragging reports whether a drag is in progress.
func (d *Dial) Dragging() bool {
	return d.dragging
}

// Contains reports whether the point lies within radius of the pivot.
func (d *Dial) Contains(x, y, radius float64) bool {
	dx, dy := x-d.PivotX, y-d.PivotY
	return dx*dx+dy*dy <= radius*radius
}

// BeginDrag starts a drag at pointer (x, y). Returns false if the dial is
// disabled or unbound.
func (d *Dial) BeginDrag(x, y float64) bool {
	if !d.enabled || d.target == nil {
		return false
	}
	d.dragging = true
	d.hasRef = false
	d.capture(x, y)
	return true
}

// capture records the drag reference if the pointer defines an angle.
func (d *Dial) capture(x, y float64) {
	a, ok := d.pointerAngle(x, y)
	if !ok {
		return
	}
	d.startPointer = a
	d.startAngle = d.angle
	d.hasRef = true
}

// Drag moves the knob to follow the pointer. A pointer on the pivot holds the
// last angle; the first valid position after that becomes the reference.
func (d *Dial) Drag(x, y float64) {
	if !d.dragging {
		return
	}
	if !d.hasRef {
		d.capture(x, y)
		return
	}
	a, ok := d.pointerAngle(x, y)
	if !ok {
		return
	}
	delta := ShortestDelta(d.startPointer, a)
	d.angle = clampAngle(d.startAngle+delta, d.MinAngle, d.MaxAngle)
}

// EndDrag releases the knob. The angle is kept.
func (d *Dial) EndDrag() {
	d.dragging = false
	d.hasRef = false
	d.startPointer = 0
	d.startAngle = 0
}

// Update forwards the output to the resource while a drag is active.
// Called once per tick.
func (d *Dial) Update() {
	if d.dragging && d.enabled {
		d.Sync()
	}
}

func (d *Dial) pointerAngle(x, y float64) (float64, bool) {
	dx, dy := x-d.PivotX, y-d.PivotY
	if d.DeadZone > 0 && dx*dx+dy*dy < d.DeadZone*d.DeadZone {
		return 0, false
	}
	return PointerAngle(dx, dy)
}

func clampAngle(a, lo, hi float64) float64 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}
