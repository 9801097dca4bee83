package telemetry

import "log/slog"

// OutcomeRecord is one finished session.
type OutcomeRecord struct {
	SessionID    string  `csv:"session"`
	Seed         int64   `csv:"seed"`
	Cause        string  `csv:"cause"`
	Victory      bool    `csv:"victory"`
	Message      string  `csv:"message"`
	EndTick      int32   `csv:"end_tick"`
	SimTimeSec   float64 `csv:"sim_time"`
	Water        float64 `csv:"water"`
	Minerals     float64 `csv:"minerals"`
	TempDiff     float64 `csv:"temp_diff"`
	MineralDrops int     `csv:"mineral_drops"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r OutcomeRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", r.SessionID),
		slog.String("cause", r.Cause),
		slog.Bool("victory", r.Victory),
		slog.Int("end_tick", int(r.EndTick)),
		slog.Float64("sim_time", r.SimTimeSec),
		slog.Float64("water", r.Water),
		slog.Float64("minerals", r.Minerals),
		slog.Float64("temp_diff", r.TempDiff),
	)
}
