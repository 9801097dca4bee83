package main

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/basin/config"
	"github.com/pthm-cable/basin/input"
)

func TestTermLayout_HitTests(t *testing.T) {
	l := newTermLayout(100, 40)

	if !l.onDial(l.WaterDial, l.WaterDial[0], l.WaterDial[1]) {
		t.Error("water pivot should be on the water dial")
	}
	if l.onDial(l.WaterDial, l.TempDial[0], l.TempDial[1]) {
		t.Error("dials overlap")
	}
	if !l.Basin.contains(l.Basin.X, l.Basin.Y) || l.Basin.contains(l.Basin.X+l.Basin.W, l.Basin.Y) {
		t.Error("basin bounds are off")
	}
	if l.Basin.contains(l.Sack.X, l.Sack.Y) {
		t.Error("sack overlaps the basin")
	}
}

// A quarter turn drawn in cells rotates the dial a quarter turn once rows are scaled.
func TestTermPointer_QuarterTurn(t *testing.T) {
	cfg := config.Default()
	l := newTermLayout(100, 40)
	px, py := pointer(l.WaterDial[0], l.WaterDial[1])
	d := input.NewDial(cfg.Dials.Water, px, py, input.ResourceFunc(func(float64) {}))
	d.SetEnabled(true)

	// Right of the pivot, then straight below it
	rx, ry := pointer(l.WaterDial[0]+8, l.WaterDial[1])
	bx, by := pointer(l.WaterDial[0], l.WaterDial[1]+4)
	if !d.BeginDrag(rx, ry) {
		t.Fatal("drag refused")
	}
	d.Drag(bx, by)

	if math.Abs(d.Angle()-90) > 1e-9 {
		t.Errorf("expected 90°, got %f", d.Angle())
	}
}

func TestPollEvents_StopsAfterFinalize(t *testing.T) {
	queue := []tcell.Event{
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventResize(80, 24),
	}
	polls := 0
	poll := func() tcell.Event {
		polls++
		if len(queue) == 0 {
			return nil
		}
		ev := queue[0]
		queue = queue[1:]
		return ev
	}

	out := make(chan tcell.Event, 10)
	done := make(chan struct{})
	go func() {
		pollEvents(poll, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller kept running after the screen was finalized")
	}
	if polls != 3 {
		t.Errorf("polled %d times, want 3", polls)
	}
	if len(out) != 3 {
		t.Fatalf("forwarded %d events, want 3", len(out))
	}
	for i := 0; i < 2; i++ {
		if ev := <-out; ev == nil {
			t.Errorf("event %d is nil", i)
		}
	}
	if ev := <-out; ev != nil {
		t.Errorf("last event = %v, want nil", ev)
	}
}
