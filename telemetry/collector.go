package telemetry

import "math"

// Sample is one tick's reading of the plant.
type Sample struct {
	Water     float64
	Minerals  float64
	TempDiff  float64
	Desired   float64
	WaterRate float64
	Supply    float64
	Warned    bool
	Growth    float64 // Progress toward maturity in [0, 1]
}

// Collector accumulates per-tick samples and events within sim-time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	sessionID       string
	windowStartTick int32
	windowStartTime float64

	water    []float64
	minerals []float64
	tempDiff []float64
	absDiff  []float64
	warned   int
	last     Sample

	mineralDrops int
	retargets    int
	dialMoves    int
}

// NewCollector creates a collector that flushes every windowDurationSec of sim time.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Reset discards the current window and starts a new one for sessionID.
func (c *Collector) Reset(sessionID string, tick int32, simTime float64) {
	c.sessionID = sessionID
	c.windowStartTick = tick
	c.windowStartTime = simTime
	c.clear()
}

func (c *Collector) clear() {
	c.water = c.water[:0]
	c.minerals = c.minerals[:0]
	c.tempDiff = c.tempDiff[:0]
	c.absDiff = c.absDiff[:0]
	c.warned = 0
	c.mineralDrops = 0
	c.retargets = 0
	c.dialMoves = 0
}

// Record adds one tick sample.
func (c *Collector) Record(s Sample) {
	c.water = append(c.water, s.Water)
	c.minerals = append(c.minerals, s.Minerals)
	c.tempDiff = append(c.tempDiff, s.TempDiff)
	c.absDiff = append(c.absDiff, math.Abs(s.TempDiff))
	if s.Warned {
		c.warned++
	}
	c.last = s
}

// RecordMineralDrop records a mineral drop that reached the basin.
func (c *Collector) RecordMineralDrop() {
	c.mineralDrops++
}

// RecordRetargets records n desired-temperature retargets.
func (c *Collector) RecordRetargets(n int) {
	c.retargets += n
}

// RecordDialMove records one completed dial drag.
func (c *Collector) RecordDialMove() {
	c.dialMoves++
}

// ShouldFlush returns true once a full window of sim time has elapsed.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartTime >= c.windowDurationSec
}

// Pending reports whether the current window holds any samples.
func (c *Collector) Pending() bool {
	return len(c.water) > 0
}

// Flush produces a WindowStats and starts the next window at (tick, simTime).
func (c *Collector) Flush(tick int32, simTime float64) WindowStats {
	water := ComputeSeriesStats(c.water)
	minerals := ComputeSeriesStats(c.minerals)
	diff := ComputeSeriesStats(c.tempDiff)
	q := Quantiles(c.absDiff, 0.5, 0.9)

	var warnFrac float64
	if n := len(c.water); n > 0 {
		warnFrac = float64(c.warned) / float64(n)
	}

	stats := WindowStats{
		SessionID:       c.sessionID,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTime,
		Samples:         len(c.water),
		WaterMean:       water.Mean,
		WaterStd:        water.Std,
		WaterMin:        water.Min,
		WaterMax:        water.Max,
		WaterRate:       c.last.WaterRate,
		Supply:          c.last.Supply,
		MineralsMean:    minerals.Mean,
		MineralsMin:     minerals.Min,
		MineralsMax:     minerals.Max,
		TempDiffMean:    diff.Mean,
		TempDiffAbsP50:  q[0],
		TempDiffAbsP90:  q[1],
		Desired:         c.last.Desired,
		WarningFrac:     warnFrac,
		MineralDrops:    c.mineralDrops,
		Retargets:       c.retargets,
		DialMoves:       c.dialMoves,
		GrowthProgress:  c.last.Growth,
	}

	c.windowStartTick = tick
	c.windowStartTime = simTime
	c.clear()
	return stats
}
