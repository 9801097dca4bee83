package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/basin/components"
)

const eps = 1e-9

func waterPool() components.Pool {
	return components.Pool{
		Kind:            components.PoolWater,
		Quantity:        1.0,
		ConsumptionRate: 0.1,
		Bounds:          components.Bounds{MinHard: 0.0, MinWarn: 0.5, MaxWarn: 1.5, MaxHard: 2.0},
	}
}

// ---------- UpdatePool basic behavior ----------

func TestUpdatePool_ZeroDtNoOp(t *testing.T) {
	p := waterPool()
	p.ConsumptionGrowth = 0.5
	p.SupplyRate = 3

	d := UpdatePool(&p, 0)
	if d != (PoolDelta{}) {
		t.Errorf("expected empty delta, got %+v", d)
	}
	if p.Quantity != 1.0 || p.ConsumptionRate != 0.1 {
		t.Errorf("pool changed on zero dt: %+v", p)
	}
}

func TestUpdatePool_ConstantDrain(t *testing.T) {
	p := waterPool()

	for i := 0; i < 50; i++ {
		UpdatePool(&p, 0.1)
	}
	if math.Abs(p.Quantity-0.5) > eps {
		t.Errorf("after 5s quantity = %v, want 0.5", p.Quantity)
	}

	for i := 0; i < 50; i++ {
		UpdatePool(&p, 0.1)
	}
	if math.Abs(p.Quantity) > eps {
		t.Errorf("after 10s quantity = %v, want 0", p.Quantity)
	}
}

func TestUpdatePool_DrainAcceleratesBeforeConsuming(t *testing.T) {
	p := waterPool()
	p.ConsumptionGrowth = 0.01

	d := UpdatePool(&p, 1.0)

	if math.Abs(p.ConsumptionRate-0.11) > eps {
		t.Errorf("consumption rate = %v, want 0.11", p.ConsumptionRate)
	}
	// The already-raised rate is what gets consumed this tick
	if math.Abs(d.Consumed-0.11) > eps {
		t.Errorf("consumed = %v, want 0.11", d.Consumed)
	}
	if math.Abs(p.Quantity-0.89) > eps {
		t.Errorf("quantity = %v, want 0.89", p.Quantity)
	}
}

func TestUpdatePool_SupplyOffsetsDrain(t *testing.T) {
	p := waterPool()
	p.SupplyRate = 0.3

	d := UpdatePool(&p, 0.5)

	if math.Abs(d.Added-0.15) > eps || math.Abs(d.Consumed-0.05) > eps {
		t.Errorf("delta = %+v, want added 0.15 consumed 0.05", d)
	}
	if math.Abs(p.Quantity-1.1) > eps {
		t.Errorf("quantity = %v, want 1.1", p.Quantity)
	}
}

func TestUpdatePool_NeverClamps(t *testing.T) {
	p := waterPool()
	p.SupplyRate = 10

	UpdatePool(&p, 1.0)
	if p.Quantity <= p.Bounds.MaxHard {
		t.Errorf("quantity %v should be allowed past max_hard %v", p.Quantity, p.Bounds.MaxHard)
	}
}

func TestUpdatePool_DeterministicReplay(t *testing.T) {
	dts := []float64{0.016, 0.017, 0.033, 0, 0.1, 0.016, 0.05, 0.2}
	run := func() []float64 {
		p := waterPool()
		p.ConsumptionGrowth = 0.005
		p.SupplyRate = 0.08
		var traj []float64
		for i, dt := range dts {
			UpdatePool(&p, dt)
			if i == 3 {
				ApplyQuantity(&p, 0.5)
			}
			traj = append(traj, p.Quantity)
		}
		return traj
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trajectories diverge at tick %d: %v vs %v", i, a[i], b[i])
		}
	}
}

// ---------- ApplyQuantity ----------

func TestApplyQuantity(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"positive", 0.5, 1.5},
		{"negative removes", -0.25, 0.75},
		{"zero", 0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := waterPool()
			ApplyQuantity(&p, tt.amount)
			if math.Abs(p.Quantity-tt.want) > eps {
				t.Errorf("quantity = %v, want %v", p.Quantity, tt.want)
			}
		})
	}
}

func TestApplyQuantity_TwoDropsBothApply(t *testing.T) {
	p := waterPool()
	ApplyQuantity(&p, 0.5)
	ApplyQuantity(&p, 0.5)
	if math.Abs(p.Quantity-2.0) > eps {
		t.Errorf("quantity = %v, want 2.0", p.Quantity)
	}
}

// ---------- Growth ----------

func TestUpdateGrowth(t *testing.T) {
	g := components.Growth{Target: 2, Base: 1, Rate: 0.5}

	UpdateGrowth(&g, 1)
	if g.Mature() {
		t.Error("should not be mature after 1s of 2s")
	}
	if math.Abs(g.Scale()-1.5) > eps {
		t.Errorf("scale = %v, want 1.5", g.Scale())
	}
	if math.Abs(g.Progress()-0.5) > eps {
		t.Errorf("progress = %v, want 0.5", g.Progress())
	}

	UpdateGrowth(&g, -3)
	if g.Elapsed != 1 {
		t.Errorf("negative dt changed elapsed to %v", g.Elapsed)
	}

	UpdateGrowth(&g, 1)
	if !g.Mature() {
		t.Error("should be mature at target")
	}
}

func TestGrowth_ZeroTargetNeverMatures(t *testing.T) {
	g := components.Growth{Elapsed: 1e6}
	if g.Mature() {
		t.Error("zero target must never mature")
	}
}
