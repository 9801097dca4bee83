package components

// RetargetTimer schedules the next change of the desired temperature.
// At most one wait is pending: arming it again replaces the previous deadline.
type RetargetTimer struct {
	MinInterval float64 // Seconds
	MaxInterval float64 // Seconds
	Remaining   float64 // Seconds left on the pending wait
	Active      bool
}

// Thermo tracks the dial-driven current temperature against a drifting desired one.
type Thermo struct {
	Current       float64 // Set from the dial, no drift of its own
	Desired       float64 // Moves toward TargetDesired at NeedleSpeed
	TargetDesired float64
	MinTemp       float64
	MaxTemp       float64
	NeedleSpeed   float64 // Degrees per second
	WarnBand      float64 // |Current-Desired| beyond this warns
	HardBand      float64 // |Current-Desired| beyond this kills
	Retarget      RetargetTimer
}

// Difference returns Current - Desired.
func (t *Thermo) Difference() float64 {
	return t.Current - t.Desired
}
