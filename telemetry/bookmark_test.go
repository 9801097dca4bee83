package telemetry

import (
	"testing"
)

func hasBookmark(bms []Bookmark, t BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == t {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_CloseCallAndRecovery(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(WindowStats{WindowEndTick: 600, WarningFrac: 0.1, WaterRate: 0.1})

	bms := bd.Check(WindowStats{WindowEndTick: 1200, WarningFrac: 0.7, WaterRate: 0.1})
	if !hasBookmark(bms, BookmarkCloseCall) {
		t.Error("expected close_call bookmark")
	}

	// Staying in warning does not repeat the bookmark
	bms = bd.Check(WindowStats{WindowEndTick: 1800, WarningFrac: 0.8, WaterRate: 0.1})
	if hasBookmark(bms, BookmarkCloseCall) {
		t.Error("close_call should fire once per episode")
	}

	bms = bd.Check(WindowStats{WindowEndTick: 2400, WarningFrac: 0, WaterRate: 0.1})
	if !hasBookmark(bms, BookmarkRecovery) {
		t.Error("expected recovery bookmark")
	}
}

func TestBookmarkDetector_SteadyHandOnce(t *testing.T) {
	bd := NewBookmarkDetector(3)

	count := 0
	for i := 0; i < 12; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 600), WaterRate: 0.1})
		if hasBookmark(bms, BookmarkSteadyHand) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("steady_hand fired %d times, want 1", count)
	}
}

func TestBookmarkDetector_DrainDoubled(t *testing.T) {
	bd := NewBookmarkDetector(5)

	rates := []float64{0.10, 0.14, 0.19, 0.21, 0.30}
	fired := -1
	for i, r := range rates {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 600), WaterRate: r})
		if hasBookmark(bms, BookmarkDrainDoubled) {
			if fired >= 0 {
				t.Fatal("drain_doubled fired twice")
			}
			fired = i
		}
	}
	if fired != 3 {
		t.Errorf("drain_doubled fired at window %d, want 3", fired)
	}
}

func TestBookmarkDetector_Reset(t *testing.T) {
	bd := NewBookmarkDetector(5)
	bd.Check(WindowStats{WarningFrac: 0.9, WaterRate: 0.1})
	bd.Reset()

	bms := bd.Check(WindowStats{WarningFrac: 0.9, SessionID: "b"})
	if !hasBookmark(bms, BookmarkCloseCall) {
		t.Error("reset detector should treat the first window as fresh")
	}
	if bms[0].SessionID != "b" {
		t.Errorf("session = %q, want b", bms[0].SessionID)
	}
}
