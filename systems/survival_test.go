package systems

import (
	"testing"

	"github.com/pthm-cable/basin/components"
)

func baseSnapshot() Snapshot {
	return Snapshot{
		Water: components.Pool{
			Kind:     components.PoolWater,
			Quantity: 1.0,
			Bounds:   components.Bounds{MinHard: 0.0, MinWarn: 0.5, MaxWarn: 1.5, MaxHard: 2.0},
		},
		Minerals: components.Pool{
			Kind:     components.PoolMinerals,
			Quantity: 1.0,
			Bounds:   components.Bounds{MinHard: 0.2, MinWarn: 0.4, MaxWarn: 1.6, MaxHard: 2.0},
		},
		WarnBand: 1,
		HardBand: 2,
		Growth:   components.Growth{Target: 180},
	}
}

// ---------- Thresholds ----------

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Snapshot)
		warning []Warning
		cause   Cause
	}{
		{"healthy", func(s *Snapshot) {}, nil, CauseNone},
		{"water at warn edge", func(s *Snapshot) { s.Water.Quantity = 0.5 }, nil, CauseNone},
		{"water low warn", func(s *Snapshot) { s.Water.Quantity = 0.4 }, []Warning{WarnUnderwatering}, CauseNone},
		{"water low dead", func(s *Snapshot) { s.Water.Quantity = -0.01 }, []Warning{WarnUnderwatering}, CauseUnderWatered},
		{"water high warn", func(s *Snapshot) { s.Water.Quantity = 1.8 }, []Warning{WarnOverwatering}, CauseNone},
		{"water high dead", func(s *Snapshot) { s.Water.Quantity = 2.1 }, []Warning{WarnOverwatering}, CauseOverWatered},
		{"temp high warn", func(s *Snapshot) { s.TempDiff = 1.5 }, []Warning{WarnOverheating}, CauseNone},
		{"temp high dead", func(s *Snapshot) { s.TempDiff = 3 }, []Warning{WarnOverheating}, CauseOverheated},
		{"temp low warn", func(s *Snapshot) { s.TempDiff = -1.5 }, []Warning{WarnFreezing}, CauseNone},
		{"temp low dead", func(s *Snapshot) { s.TempDiff = -2.5 }, []Warning{WarnFreezing}, CauseTooCold},
		{"minerals low warn", func(s *Snapshot) { s.Minerals.Quantity = 0.3 }, []Warning{WarnLowMinerals}, CauseNone},
		{"minerals low dead", func(s *Snapshot) { s.Minerals.Quantity = 0.1 }, []Warning{WarnLowMinerals}, CauseUnderMinerals},
		{"minerals high warn", func(s *Snapshot) { s.Minerals.Quantity = 1.8 }, []Warning{WarnHighMinerals}, CauseNone},
		{"minerals high dead", func(s *Snapshot) { s.Minerals.Quantity = 2.5 }, []Warning{WarnHighMinerals}, CauseOverMinerals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			tt.mutate(&s)
			r := Evaluate(s)
			if r.Cause != tt.cause {
				t.Errorf("cause = %v, want %v", r.Cause, tt.cause)
			}
			if len(r.Warnings) != len(tt.warning) {
				t.Fatalf("warnings = %v, want %v", r.Warnings, tt.warning)
			}
			for i := range tt.warning {
				if r.Warnings[i] != tt.warning[i] {
					t.Errorf("warning[%d] = %v, want %v", i, r.Warnings[i], tt.warning[i])
				}
			}
		})
	}
}

// ---------- Ordering ----------

func TestEvaluate_FirstCauseWins(t *testing.T) {
	s := baseSnapshot()
	s.Water.Quantity = -0.1
	s.TempDiff = 5

	r := Evaluate(s)
	if r.Cause != CauseUnderWatered {
		t.Errorf("cause = %v, want UnderWatered", r.Cause)
	}
	if !r.Has(WarnUnderwatering) || !r.Has(WarnOverheating) {
		t.Errorf("both warnings should be collected, got %v", r.Warnings)
	}
}

func TestEvaluate_WarningOrder(t *testing.T) {
	s := baseSnapshot()
	s.Minerals.Quantity = 1.9
	s.TempDiff = -1.5
	s.Water.Quantity = 0.3

	r := Evaluate(s)
	want := []Warning{WarnUnderwatering, WarnFreezing, WarnHighMinerals}
	if len(r.Warnings) != len(want) {
		t.Fatalf("warnings = %v, want %v", r.Warnings, want)
	}
	for i := range want {
		if r.Warnings[i] != want[i] {
			t.Errorf("warning[%d] = %v, want %v", i, r.Warnings[i], want[i])
		}
	}
	if got := r.WarningText(); got != "Underwatering!  Freezing!  Mineral overload!" {
		t.Errorf("warning text = %q", got)
	}
}

func TestEvaluate_VictorySkipsResources(t *testing.T) {
	s := baseSnapshot()
	s.Growth.Elapsed = s.Growth.Target
	s.Water.Quantity = -5
	s.TempDiff = 10

	r := Evaluate(s)
	if r.Cause != CauseVictory {
		t.Errorf("cause = %v, want Victory", r.Cause)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("victory should carry no warnings, got %v", r.Warnings)
	}
}

// ---------- Scenarios ----------

func TestEvaluate_TemperatureScenario(t *testing.T) {
	th := components.Thermo{Current: 28, Desired: 25}
	s := baseSnapshot()
	s.TempDiff = th.Difference()
	if r := Evaluate(s); r.Cause != CauseOverheated {
		t.Errorf("28 vs 25: cause = %v, want Overheated", r.Cause)
	}

	th.Current = 26.5
	s.TempDiff = th.Difference()
	r := Evaluate(s)
	if r.Cause != CauseNone || !r.Has(WarnOverheating) {
		t.Errorf("26.5 vs 25: got %+v, want Overheating warning only", r)
	}
}

func TestEvaluate_WaterScenario(t *testing.T) {
	s := baseSnapshot()
	s.Water.ConsumptionRate = 0.1
	const dt = 0.1

	for i := 0; i < 50; i++ {
		UpdatePool(&s.Water, dt)
	}
	r := Evaluate(s)
	if r.Cause != CauseNone {
		t.Fatalf("at 5s cause = %v, want alive", r.Cause)
	}

	deadAt := -1
	for i := 50; i < 120; i++ {
		UpdatePool(&s.Water, dt)
		if Evaluate(s).Cause == CauseUnderWatered {
			deadAt = i + 1
			break
		}
	}
	if deadAt < 0 {
		t.Fatal("plant never died of thirst")
	}
	// Quantity crosses zero at 10s; rounding may defer the cause by one tick
	if deadAt > 101 {
		t.Errorf("died at tick %d, want by tick 101", deadAt)
	}
	if deadAt < 100 {
		t.Errorf("died at tick %d, before the pool could reach zero", deadAt)
	}
}

// Every hard threshold lies outside its warning band, so a slow monotone drift
// always produces at least one warning tick before death.
func TestEvaluate_WarnBeforeDeath(t *testing.T) {
	axes := []struct {
		name string
		step func(s *Snapshot)
	}{
		{"water down", func(s *Snapshot) { s.Water.Quantity -= 0.01 }},
		{"water up", func(s *Snapshot) { s.Water.Quantity += 0.01 }},
		{"temp up", func(s *Snapshot) { s.TempDiff += 0.01 }},
		{"temp down", func(s *Snapshot) { s.TempDiff -= 0.01 }},
		{"minerals down", func(s *Snapshot) { s.Minerals.Quantity -= 0.01 }},
		{"minerals up", func(s *Snapshot) { s.Minerals.Quantity += 0.01 }},
	}

	for _, ax := range axes {
		t.Run(ax.name, func(t *testing.T) {
			s := baseSnapshot()
			warned := false
			for i := 0; i < 1000; i++ {
				ax.step(&s)
				r := Evaluate(s)
				if r.Cause.Terminal() {
					if !warned {
						t.Fatalf("died of %v without a prior warning tick", r.Cause)
					}
					return
				}
				if len(r.Warnings) > 0 {
					warned = true
				}
			}
			t.Fatal("never died")
		})
	}
}

// ---------- Cause names ----------

func TestParseCause(t *testing.T) {
	known := []Cause{
		CauseUnderWatered, CauseOverWatered, CauseTooCold, CauseOverheated,
		CauseUnderMinerals, CauseOverMinerals, CauseVictory,
	}
	for _, c := range known {
		if got := ParseCause(c.String()); got != c {
			t.Errorf("ParseCause(%q) = %v, want %v", c.String(), got, c)
		}
	}

	for _, s := range []string{"", "Drowned", "overheated"} {
		if got := ParseCause(s); got != CauseUnknown {
			t.Errorf("ParseCause(%q) = %v, want Unknown", s, got)
		}
	}
}

func TestCauseMessage_UnknownFallback(t *testing.T) {
	if CauseUnknown.Message() != "The plant died." {
		t.Errorf("unknown message = %q", CauseUnknown.Message())
	}
	if Cause(200).Message() != CauseUnknown.Message() {
		t.Error("out-of-range cause should use the generic message")
	}
	if !CauseVictory.IsVictory() || CauseOverheated.IsVictory() {
		t.Error("IsVictory mismatch")
	}
	if CauseNone.Terminal() {
		t.Error("CauseNone must not be terminal")
	}
}
