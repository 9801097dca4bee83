package systems

import "github.com/pthm-cable/basin/components"

// Rand is the subset of *rand.Rand used by the retarget timer.
type Rand interface {
	Float64() float64
}

// uniform draws from [lo, hi).
func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// UpdateThermo moves the desired temperature toward its target at NeedleSpeed.
func UpdateThermo(th *components.Thermo, dt float64) {
	if dt <= 0 || th.Desired == th.TargetDesired {
		return
	}
	th.Desired = MoveTowards(th.Desired, th.TargetDesired, th.NeedleSpeed*dt)
}

// SetThermoFromDial sets the current temperature from a normalized dial value.
// The mapping is inverted: t=0 is MaxTemp, t=1 is MinTemp.
func SetThermoFromDial(th *components.Thermo, t float64) {
	th.Current = Lerp(th.MaxTemp, th.MinTemp, Clamp01(t))
}

// ArmRetarget (re)starts the retarget timer with a fresh random wait.
// Any pending wait is discarded.
func ArmRetarget(th *components.Thermo, rng Rand) {
	r := &th.Retarget
	r.Remaining = uniform(rng, r.MinInterval, r.MaxInterval)
	r.Active = true
}

// StopRetarget cancels the pending wait.
func StopRetarget(th *components.Thermo) {
	th.Retarget.Active = false
	th.Retarget.Remaining = 0
}

// AdvanceRetarget runs the retarget timer for dt seconds of wall-clock time.
// Each expiry picks a new TargetDesired uniformly in [MinTemp, MaxTemp] and re-arms.
// Returns the number of retargets that fired.
func AdvanceRetarget(th *components.Thermo, dt float64, rng Rand) int {
	r := &th.Retarget
	if !r.Active || dt <= 0 {
		return 0
	}

	fired := 0
	r.Remaining -= dt
	for r.Remaining <= 0 {
		th.TargetDesired = uniform(rng, th.MinTemp, th.MaxTemp)
		fired++
		wait := uniform(rng, r.MinInterval, r.MaxInterval)
		if wait <= 0 {
			// Degenerate interval; fire once per advance
			r.Remaining = 0
			break
		}
		r.Remaining += wait
	}
	return fired
}
