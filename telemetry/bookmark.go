package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCloseCall    BookmarkType = "close_call"
	BookmarkRecovery     BookmarkType = "recovery"
	BookmarkSteadyHand   BookmarkType = "steady_hand"
	BookmarkDrainDoubled BookmarkType = "drain_doubled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	SessionID   string       `csv:"session"`
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"session", b.SessionID,
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// closeCallFrac is the warning fraction above which a window counts as a close call.
const closeCallFrac = 0.5

// steadyWindows is how many warning-free windows in a row earn a steady-hand bookmark.
const steadyWindows = 5

// BookmarkDetector detects notable moments across the windows of one session.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	baseRate     float64 // Water consumption in the first window
	drainFlagged bool
	quietStreak  int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Reset forgets all history, for a new session.
func (bd *BookmarkDetector) Reset() {
	*bd = *NewBookmarkDetector(bd.historySize)
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark
	mark := func(t BookmarkType, format string, args ...any) {
		bookmarks = append(bookmarks, Bookmark{
			SessionID:   stats.SessionID,
			Type:        t,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf(format, args...),
		})
	}

	prev, hasPrev := bd.last()

	if stats.WarningFrac >= closeCallFrac && (!hasPrev || prev.WarningFrac < closeCallFrac) {
		mark(BookmarkCloseCall, "%.0f%% of the window spent in a warning band", stats.WarningFrac*100)
	}

	if hasPrev && prev.WarningFrac >= closeCallFrac && stats.WarningFrac == 0 {
		mark(BookmarkRecovery, "All resources back inside their warning bands")
	}

	if stats.WarningFrac == 0 {
		bd.quietStreak++
	} else {
		bd.quietStreak = 0
	}
	if bd.quietStreak == steadyWindows {
		mark(BookmarkSteadyHand, "No warnings for %d windows", steadyWindows)
	}

	if !hasPrev {
		bd.baseRate = stats.WaterRate
	} else if !bd.drainFlagged && bd.baseRate > 0 && stats.WaterRate >= 2*bd.baseRate {
		bd.drainFlagged = true
		mark(BookmarkDrainDoubled, "Water consumption %.3f/s is double the opening %.3f/s", stats.WaterRate, bd.baseRate)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) last() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}
