package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window of one session.
type WindowStats struct {
	SessionID       string  `csv:"session"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Samples         int     `csv:"samples"`

	// Water quantity
	WaterMean float64 `csv:"water_mean"`
	WaterStd  float64 `csv:"water_std"`
	WaterMin  float64 `csv:"water_min"`
	WaterMax  float64 `csv:"water_max"`
	WaterRate float64 `csv:"water_consumption"` // Drain per second at window end
	Supply    float64 `csv:"water_supply"`      // Tank output at window end

	// Minerals quantity
	MineralsMean float64 `csv:"minerals_mean"`
	MineralsMin  float64 `csv:"minerals_min"`
	MineralsMax  float64 `csv:"minerals_max"`

	// Current - Desired temperature
	TempDiffMean   float64 `csv:"temp_diff_mean"`
	TempDiffAbsP50 float64 `csv:"temp_diff_abs_p50"`
	TempDiffAbsP90 float64 `csv:"temp_diff_abs_p90"`
	Desired        float64 `csv:"desired"`

	// Fraction of samples with at least one warning
	WarningFrac float64 `csv:"warning_frac"`

	// Events during window
	MineralDrops int `csv:"mineral_drops"`
	Retargets    int `csv:"retargets"`
	DialMoves    int `csv:"dial_moves"`

	GrowthProgress float64 `csv:"growth_progress"`
}

// SeriesStats summarizes one sampled quantity.
type SeriesStats struct {
	Mean, Std, Min, Max float64
}

// ComputeSeriesStats calculates mean, population std, min and max.
// Empty input yields zeros.
func ComputeSeriesStats(values []float64) SeriesStats {
	if len(values) == 0 {
		return SeriesStats{}
	}
	mean, variance := stat.PopMeanVariance(values, nil)
	s := SeriesStats{Mean: mean, Min: values[0], Max: values[0]}
	if variance > 0 {
		s.Std = math.Sqrt(variance)
	}
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}

// Quantiles returns the p-quantiles of values using the empirical CDF.
// Empty input yields zeros.
func Quantiles(values []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(values) == 0 {
		return out
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	for i, p := range ps {
		out[i] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.SessionID),
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("water_mean", s.WaterMean),
		slog.Float64("water_min", s.WaterMin),
		slog.Float64("water_max", s.WaterMax),
		slog.Float64("water_consumption", s.WaterRate),
		slog.Float64("water_supply", s.Supply),
		slog.Float64("minerals_mean", s.MineralsMean),
		slog.Float64("minerals_min", s.MineralsMin),
		slog.Float64("temp_diff_mean", s.TempDiffMean),
		slog.Float64("temp_diff_abs_p90", s.TempDiffAbsP90),
		slog.Float64("desired", s.Desired),
		slog.Float64("warning_frac", s.WarningFrac),
		slog.Int("mineral_drops", s.MineralDrops),
		slog.Int("retargets", s.Retargets),
		slog.Float64("growth_progress", s.GrowthProgress),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
