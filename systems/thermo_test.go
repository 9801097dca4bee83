package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/basin/components"
)

func newThermo() components.Thermo {
	return components.Thermo{
		Current:       25,
		Desired:       25,
		TargetDesired: 25,
		MinTemp:       10,
		MaxTemp:       40,
		NeedleSpeed:   1.5,
		WarnBand:      1,
		HardBand:      2,
		Retarget:      components.RetargetTimer{MinInterval: 15, MaxInterval: 30},
	}
}

// fixedRand returns a constant.
type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// ---------- Desired drift ----------

func TestUpdateThermo_StepsWithoutOvershoot(t *testing.T) {
	th := newThermo()
	th.TargetDesired = 27

	UpdateThermo(&th, 1.0)
	if math.Abs(th.Desired-26.5) > eps {
		t.Errorf("desired = %v, want 26.5", th.Desired)
	}

	UpdateThermo(&th, 1.0)
	if th.Desired != 27 {
		t.Errorf("desired = %v, want exactly 27 (no overshoot)", th.Desired)
	}
}

func TestUpdateThermo_MovesDown(t *testing.T) {
	th := newThermo()
	th.TargetDesired = 20

	UpdateThermo(&th, 2.0)
	if math.Abs(th.Desired-22) > eps {
		t.Errorf("desired = %v, want 22", th.Desired)
	}
}

func TestUpdateThermo_Monotone(t *testing.T) {
	th := newThermo()
	th.TargetDesired = 33
	prev := th.Desired
	for i := 0; i < 500; i++ {
		UpdateThermo(&th, 0.016)
		if th.Desired < prev || th.Desired > th.TargetDesired {
			t.Fatalf("tick %d: desired %v not monotone toward %v (prev %v)", i, th.Desired, th.TargetDesired, prev)
		}
		prev = th.Desired
	}
}

// ---------- Dial mapping ----------

func TestSetThermoFromDial(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"zero is max temp", 0, 40},
		{"one is min temp", 1, 10},
		{"half is middle", 0.5, 25},
		{"below zero clamps", -0.5, 40},
		{"above one clamps", 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newThermo()
			SetThermoFromDial(&th, tt.t)
			if math.Abs(th.Current-tt.want) > eps {
				t.Errorf("current = %v, want %v", th.Current, tt.want)
			}
		})
	}
}

// ---------- Retarget timer ----------

func TestArmRetarget_DrawsWithinInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		th := newThermo()
		ArmRetarget(&th, rng)
		r := th.Retarget
		if !r.Active {
			t.Fatal("timer should be active after arming")
		}
		if r.Remaining < r.MinInterval || r.Remaining > r.MaxInterval {
			t.Fatalf("wait %v outside [%v, %v]", r.Remaining, r.MinInterval, r.MaxInterval)
		}
	}
}

func TestAdvanceRetarget_FiresOnExpiry(t *testing.T) {
	th := newThermo()
	ArmRetarget(&th, fixedRand(0)) // wait = MinInterval = 15

	if n := AdvanceRetarget(&th, 14.9, fixedRand(0.5)); n != 0 {
		t.Fatalf("fired %d times before expiry", n)
	}
	if th.TargetDesired != 25 {
		t.Fatalf("target changed early: %v", th.TargetDesired)
	}

	if n := AdvanceRetarget(&th, 0.2, fixedRand(1.0/3.0)); n != 1 {
		t.Fatalf("fired %d times, want 1", n)
	}
	// 10 + 30/3 = 20
	if math.Abs(th.TargetDesired-20) > eps {
		t.Errorf("target = %v, want 20", th.TargetDesired)
	}
	// Re-armed with 15 + 15/3 = 20 seconds minus the 0.1s overrun
	if math.Abs(th.Retarget.Remaining-19.9) > 1e-6 {
		t.Errorf("remaining = %v, want 19.9", th.Retarget.Remaining)
	}
}

func TestAdvanceRetarget_TargetStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	th := newThermo()
	ArmRetarget(&th, rng)
	for i := 0; i < 10000; i++ {
		AdvanceRetarget(&th, 0.5, rng)
		UpdateThermo(&th, 0.5)
		if th.TargetDesired < th.MinTemp || th.TargetDesired > th.MaxTemp {
			t.Fatalf("target %v out of range", th.TargetDesired)
		}
		if th.Desired < th.MinTemp || th.Desired > th.MaxTemp {
			t.Fatalf("desired %v out of range", th.Desired)
		}
	}
}

func TestAdvanceRetarget_LongFrameFiresRepeatedly(t *testing.T) {
	th := newThermo()
	ArmRetarget(&th, fixedRand(0)) // 15s waits

	if n := AdvanceRetarget(&th, 46, fixedRand(0)); n != 3 {
		t.Errorf("fired %d times over 46s of 15s waits, want 3", n)
	}
}

func TestStopRetarget_CancelsPending(t *testing.T) {
	th := newThermo()
	ArmRetarget(&th, fixedRand(0))
	StopRetarget(&th)

	if n := AdvanceRetarget(&th, 100, fixedRand(0.9)); n != 0 {
		t.Errorf("stopped timer fired %d times", n)
	}
	if th.TargetDesired != 25 {
		t.Errorf("target changed after stop: %v", th.TargetDesired)
	}
}

func TestArmRetarget_RearmReplacesPendingWait(t *testing.T) {
	th := newThermo()
	ArmRetarget(&th, fixedRand(0)) // 15s
	AdvanceRetarget(&th, 10, fixedRand(0))

	// Re-enable: a fresh full wait, not a second timer
	ArmRetarget(&th, fixedRand(1)) // 30s
	if n := AdvanceRetarget(&th, 6, fixedRand(0)); n != 0 {
		t.Errorf("old deadline still fired after re-arm")
	}
	if math.Abs(th.Retarget.Remaining-24) > eps {
		t.Errorf("remaining = %v, want 24", th.Retarget.Remaining)
	}
}
