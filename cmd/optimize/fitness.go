package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/game"
	"github.com/pthm-cable/basin/telemetry"
)

// victoryBonus multiplies the survival time of a run that reached maturity.
const victoryBonus = 1.5

// FitnessEvaluator runs headless sessions and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxSimSec   float64
	seeds       []int64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestRun     *RunSummary
	lastQuality float64 // quality from most recent Evaluate call
}

// RunSummary describes the best single session seen so far.
type RunSummary struct {
	Seed     int64   `json:"seed"`
	Cause    string  `json:"cause"`
	Victory  bool    `json:"victory"`
	Survived float64 `json:"survived_sec"`
	Quality  float64 `json:"quality"`
	Windows  int     `json:"windows"`
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSimSec float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxSimSec:   maxSimSec,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: baseCfg.Telemetry.StatsWindow,
		bestFitness: math.Inf(1),
	}
}

// BestRun returns the best single session from the best evaluation.
func (fe *FitnessEvaluator) BestRun() *RunSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestRun
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single session.
type runResult struct {
	survivedSec float64
	outcome     game.Outcome
	finished    bool
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	summary RunSummary
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival time: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runSession(x, s)
			quality := computeQuality(r.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(r, quality),
				summary: RunSummary{
					Seed:     s,
					Cause:    r.outcome.Cause.String(),
					Victory:  r.outcome.IsVictory,
					Survived: r.survivedSec,
					Quality:  quality,
					Windows:  len(r.windowStats),
				},
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	best := results[0]
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.summary.Quality
		if r.fitness < best.fitness {
			best = r
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		summary := best.summary
		fe.bestRun = &summary
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSession plays one headless session until its outcome or maxSimSec.
func (fe *FitnessEvaluator) runSession(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 60,
		Config:         cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
		OutcomeCallback: func(o game.Outcome) {
			result.outcome = o
			result.finished = true
		},
	})
	defer g.Unload()

	for !g.Done() && g.SimTime() < fe.maxSimSec {
		g.UpdateHeadless()
	}

	result.survivedSec = g.SimTime()
	if result.finished {
		result.survivedSec = result.outcome.Elapsed
	}
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivedSec × bonus × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate runs that survive equally long.
func computeFitness(r *runResult, quality float64) float64 {
	survival := r.survivedSec
	if r.finished && r.outcome.IsVictory {
		survival *= victoryBonus
	}
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightCalm      = 0.5
	qualityWeightTemp      = 0.3
	qualityWeightStability = 0.2

	qualityWarmupWindows = 1 // skip the first window while the autopilot settles
)

// computeQuality scores how comfortable the plant was ∈ [0, 1].
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	warn := make([]float64, len(valid))
	tempErr := make([]float64, len(valid))
	water := make([]float64, len(valid))
	for i, w := range valid {
		warn[i] = w.WarningFrac
		tempErr[i] = w.TempDiffAbsP90
		water[i] = w.WaterMean
	}

	// 1. Fewer warnings
	calmScore := 1 - stat.Mean(warn, nil)

	// 2. Temperature held close to the desired value
	tempScore := math.Exp(-stat.Mean(tempErr, nil) / 2.0)

	// 3. Steady water level across windows
	stabilityScore := 0.0
	if len(water) >= 2 {
		mean, std := stat.MeanStdDev(water, nil)
		if mean > 0 {
			cv := std / mean
			stabilityScore = math.Exp(-cv * cv * 10)
		}
	}

	quality := qualityWeightCalm*calmScore +
		qualityWeightTemp*tempScore +
		qualityWeightStability*stabilityScore

	return clamp01(quality)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
