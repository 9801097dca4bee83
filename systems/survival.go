package systems

import (
	"strings"

	"github.com/pthm-cable/basin/components"
)

// Cause identifies why a session ended. The zero value means the plant is alive.
type Cause uint8

const (
	CauseNone Cause = iota
	CauseUnderWatered
	CauseOverWatered
	CauseTooCold
	CauseOverheated
	CauseUnderMinerals
	CauseOverMinerals
	CauseVictory
	CauseUnknown
)

var causeNames = [...]string{
	CauseNone:          "",
	CauseUnderWatered:  "UnderWatered",
	CauseOverWatered:   "OverWatered",
	CauseTooCold:       "TooCold",
	CauseOverheated:    "Overheated",
	CauseUnderMinerals: "UnderMinerals",
	CauseOverMinerals:  "OverMinerals",
	CauseVictory:       "Victory",
	CauseUnknown:       "Unknown",
}

var causeMessages = [...]string{
	CauseNone:          "",
	CauseUnderWatered:  "Under-watered! The roots dried out.",
	CauseOverWatered:   "Over-watered! The roots drowned.",
	CauseTooCold:       "Too cold! The plant froze.",
	CauseOverheated:    "Overheated! The leaves scorched.",
	CauseUnderMinerals: "Starved of minerals!",
	CauseOverMinerals:  "Mineral burn! Too much fertilizer.",
	CauseVictory:       "Fully grown! The plant reached maturity.",
	CauseUnknown:       "The plant died.",
}

// String returns the cause name.
func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return causeNames[CauseUnknown]
}

// Message returns the player-facing text for the cause.
// Causes outside the enum get the generic fallback.
func (c Cause) Message() string {
	if int(c) < len(causeMessages) {
		return causeMessages[c]
	}
	return causeMessages[CauseUnknown]
}

// Terminal reports whether the cause ends the session.
func (c Cause) Terminal() bool {
	return c != CauseNone
}

// IsVictory reports whether the cause is the victory outcome.
func (c Cause) IsVictory() bool {
	return c == CauseVictory
}

// ParseCause maps a cause name back to a Cause. Unmatched names yield CauseUnknown.
func ParseCause(s string) Cause {
	for i, name := range causeNames {
		if name != "" && name == s {
			return Cause(i)
		}
	}
	return CauseUnknown
}

// Warning is a non-fatal alert raised when a resource leaves its warning band.
type Warning uint8

const (
	WarnUnderwatering Warning = iota
	WarnOverwatering
	WarnOverheating
	WarnFreezing
	WarnLowMinerals
	WarnHighMinerals
)

var warningLabels = [...]string{
	WarnUnderwatering: "Underwatering",
	WarnOverwatering:  "Overwatering",
	WarnOverheating:   "Overheating",
	WarnFreezing:      "Freezing",
	WarnLowMinerals:   "Low minerals",
	WarnHighMinerals:  "Mineral overload",
}

// String returns the warning label.
func (w Warning) String() string {
	if int(w) < len(warningLabels) {
		return warningLabels[w]
	}
	return "Warning"
}

// Snapshot is the per-tick input of the survival evaluation.
type Snapshot struct {
	Water    components.Pool
	Minerals components.Pool
	TempDiff float64 // Current - Desired
	WarnBand float64
	HardBand float64
	Growth   components.Growth
}

// Report is the result of one evaluation.
// Warnings are returned even when a death fires in the same tick.
type Report struct {
	Warnings []Warning
	Cause    Cause
}

// Has reports whether w was raised.
func (r Report) Has(w Warning) bool {
	for _, x := range r.Warnings {
		if x == w {
			return true
		}
	}
	return false
}

// WarningText joins the warning labels for display.
func (r Report) WarningText() string {
	if len(r.Warnings) == 0 {
		return ""
	}
	parts := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		parts[i] = w.String() + "!"
	}
	return strings.Join(parts, "  ")
}

// axisCheck is one side of one resource axis.
type axisCheck struct {
	warn    bool
	warning Warning
	dead    bool
	cause   Cause
}

// Evaluate checks maturity, then every resource axis against its warning and hard thresholds.
//
// Order is water-low, water-high, temp-high, temp-low, minerals-low, minerals-high.
// All warnings are collected; the first death in that order is the only cause reported.
// A mature plant reports CauseVictory and skips the resource checks.
func Evaluate(s Snapshot) Report {
	if s.Growth.Mature() {
		return Report{Cause: CauseVictory}
	}

	w, wb := s.Water.Quantity, s.Water.Bounds
	m, mb := s.Minerals.Quantity, s.Minerals.Bounds
	d := s.TempDiff

	checks := [...]axisCheck{
		{w < wb.MinWarn, WarnUnderwatering, w < wb.MinHard, CauseUnderWatered},
		{w > wb.MaxWarn, WarnOverwatering, w > wb.MaxHard, CauseOverWatered},
		{d > s.WarnBand, WarnOverheating, d > s.HardBand, CauseOverheated},
		{d < -s.WarnBand, WarnFreezing, d < -s.HardBand, CauseTooCold},
		{m < mb.MinWarn, WarnLowMinerals, m < mb.MinHard, CauseUnderMinerals},
		{m > mb.MaxWarn, WarnHighMinerals, m > mb.MaxHard, CauseOverMinerals},
	}

	var r Report
	for _, c := range checks {
		if c.warn {
			r.Warnings = append(r.Warnings, c.warning)
		}
		if c.dead && r.Cause == CauseNone {
			r.Cause = c.cause
		}
	}
	return r
}
