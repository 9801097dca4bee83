package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/basin/components"
	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/systems"
)

// PoolDeltas is what changed in each pool during one step.
type PoolDeltas struct {
	Water    systems.PoolDelta
	Minerals systems.PoolDelta
}

// Plant holds one session's resource state as entities in an ECS world.
// A fresh Plant is built for every session start.
type Plant struct {
	world *ecs.World

	poolMap   *ecs.Map1[components.Pool]
	thermoMap *ecs.Map1[components.Thermo]
	growthMap *ecs.Map1[components.Growth]

	poolFilter *ecs.Filter1[components.Pool]

	water    ecs.Entity
	minerals ecs.Entity
	thermo   ecs.Entity
	growth   ecs.Entity
}

// NewPlant builds a plant with every pool at its configured initial value.
func NewPlant(cfg *config.Config) *Plant {
	world := ecs.NewWorld()

	p := &Plant{
		world:      world,
		poolMap:    ecs.NewMap1[components.Pool](world),
		thermoMap:  ecs.NewMap1[components.Thermo](world),
		growthMap:  ecs.NewMap1[components.Growth](world),
		poolFilter: ecs.NewFilter1[components.Pool](world),
	}

	water := newPool(components.PoolWater, cfg.Water)
	minerals := newPool(components.PoolMinerals, cfg.Minerals)
	p.water = p.poolMap.NewEntity(&water)
	p.minerals = p.poolMap.NewEntity(&minerals)

	t := cfg.Temperature
	thermo := components.Thermo{
		Current:       t.Desired,
		Desired:       t.Desired,
		TargetDesired: t.Desired,
		MinTemp:       t.MinTemp,
		MaxTemp:       t.MaxTemp,
		NeedleSpeed:   t.NeedleSpeed,
		WarnBand:      t.WarnBand,
		HardBand:      t.HardBand,
		Retarget: components.RetargetTimer{
			MinInterval: t.MinChangeInterval,
			MaxInterval: t.MaxChangeInterval,
		},
	}
	p.thermo = p.thermoMap.NewEntity(&thermo)

	growth := components.Growth{
		Target: cfg.Session.GrowthTarget,
		Base:   cfg.Session.GrowthBase,
		Rate:   cfg.Session.GrowthRate,
	}
	p.growth = p.growthMap.NewEntity(&growth)

	return p
}

func newPool(kind components.PoolKind, c config.PoolConfig) components.Pool {
	return components.Pool{
		Kind:              kind,
		Quantity:          c.Initial,
		ConsumptionRate:   c.ConsumptionRate,
		ConsumptionGrowth: c.ConsumptionGrowth,
		Bounds: components.Bounds{
			MinHard: c.MinHard,
			MinWarn: c.MinWarn,
			MaxWarn: c.MaxWarn,
			MaxHard: c.MaxHard,
		},
	}
}

// Water returns the water pool.
func (p *Plant) Water() *components.Pool { return p.poolMap.Get(p.water) }

// Minerals returns the minerals pool.
func (p *Plant) Minerals() *components.Pool { return p.poolMap.Get(p.minerals) }

// Thermo returns the temperature tracker.
func (p *Plant) Thermo() *components.Thermo { return p.thermoMap.Get(p.thermo) }

// Growth returns the growth proxy.
func (p *Plant) Growth() *components.Growth { return p.growthMap.Get(p.growth) }

// Step advances every pool, the desired temperature and growth by dt.
func (p *Plant) Step(dt float64) PoolDeltas {
	var d PoolDeltas

	query := p.poolFilter.Query()
	for query.Next() {
		pool := query.Get()
		delta := systems.UpdatePool(pool, dt)
		switch pool.Kind {
		case components.PoolWater:
			d.Water = delta
		case components.PoolMinerals:
			d.Minerals = delta
		}
	}

	systems.UpdateThermo(p.Thermo(), dt)
	systems.UpdateGrowth(p.Growth(), dt)
	return d
}

// Snapshot captures the evaluator input for the current state.
func (p *Plant) Snapshot() systems.Snapshot {
	th := p.Thermo()
	return systems.Snapshot{
		Water:    *p.Water(),
		Minerals: *p.Minerals(),
		TempDiff: th.Difference(),
		WarnBand: th.WarnBand,
		HardBand: th.HardBand,
		Growth:   *p.Growth(),
	}
}
