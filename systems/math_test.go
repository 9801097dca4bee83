package systems

import (
	"math"
	"testing"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name                     string
		current, target, maxStep float64
		want                     float64
	}{
		{"step up", 20, 30, 1.5, 21.5},
		{"step down", 30, 20, 1.5, 28.5},
		{"no overshoot", 20, 21, 1.5, 21},
		{"already there", 25, 25, 1.5, 25},
		{"zero step", 20, 30, 0, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveTowards(tt.current, tt.target, tt.maxStep)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MoveTowards(%f, %f, %f) = %f, want %f", tt.current, tt.target, tt.maxStep, got, tt.want)
			}
		})
	}
}

func TestInverseLerp(t *testing.T) {
	tests := []struct {
		name    string
		a, b, v float64
		want    float64
	}{
		{"inside", 0, 10, 2.5, 0.25},
		{"reversed range", 1.2, 0, 0.6, 0.5},
		{"clamped high", 0, 10, 20, 1},
		{"clamped low", 0, 10, -5, 0},
		{"degenerate", 3, 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InverseLerp(tt.a, tt.b, tt.v)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("InverseLerp(%f, %f, %f) = %f, want %f", tt.a, tt.b, tt.v, got, tt.want)
			}
		})
	}
}
