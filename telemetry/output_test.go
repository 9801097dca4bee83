package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/basin/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("empty dir should disable output, got %v, %v", om, err)
	}
	// Nil receiver is a no-op
	if err := om.WriteOutcome(OutcomeRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSVWithSingleHeader(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := om.WriteTelemetry(WindowStats{SessionID: "s", WindowEndTick: int32(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteOutcome(OutcomeRecord{SessionID: "s", Cause: "UnderWatered", Message: "dry"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteOutcome(OutcomeRecord{SessionID: "t", Cause: "Victory", Victory: true}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("telemetry.csv has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "session,window_end,") {
		t.Errorf("unexpected header %q", lines[0])
	}

	f, err := os.Open(filepath.Join(dir, "outcomes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := ReadOutcomes(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Cause != "UnderWatered" || !rows[1].Victory {
		t.Errorf("outcomes = %+v", rows)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not reload: %v", err)
	}
}
