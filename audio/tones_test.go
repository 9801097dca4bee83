package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

// drain streams s to exhaustion and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			peak = math.Max(peak, math.Abs(buf[j][0]))
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestTone_Length(t *testing.T) {
	n, peak := drain(NewTone(440, 100*time.Millisecond, WaveSine, testRate))
	if n != testRate.N(100*time.Millisecond) {
		t.Errorf("samples = %d, want %d", n, testRate.N(100*time.Millisecond))
	}
	if peak > 1.0001 || peak < 0.9 {
		t.Errorf("peak = %v, want ~1", peak)
	}
}

func TestFade_StartsAndEndsQuiet(t *testing.T) {
	d := 50 * time.Millisecond
	s := NewFade(NewTone(200, d, WaveSquare, testRate), d, 10*time.Millisecond, 10*time.Millisecond, testRate)

	buf := make([][2]float64, testRate.N(d))
	n, _ := s.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, want %d", n, len(buf))
	}
	if math.Abs(buf[0][0]) > 1e-9 {
		t.Errorf("first sample = %v, want 0", buf[0][0])
	}
	if math.Abs(buf[n-1][0]) > 0.05 {
		t.Errorf("last sample = %v, want near 0", buf[n-1][0])
	}
}

func TestCueSounds_Terminate(t *testing.T) {
	tests := []struct {
		name string
		s    beep.Streamer
	}{
		{"warning", WarningSound(testRate, 0.5)},
		{"death", DeathSound(testRate, 0.5)},
		{"drop", DropSound(testRate, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, peak := drain(tt.s)
			if n == 0 {
				t.Error("sound produced no samples")
			}
			if n > int(testRate)*2 {
				t.Errorf("sound ran %d samples, expected under 2s", n)
			}
			if peak > 1 {
				t.Errorf("peak %v clips", peak)
			}
		})
	}
}

func TestWithVolume_ZeroIsSilent(t *testing.T) {
	_, peak := drain(withVolume(NewTone(440, 20*time.Millisecond, WaveSine, testRate), 0))
	if peak != 0 {
		t.Errorf("peak = %v, want silence", peak)
	}
}

func TestNilCues(t *testing.T) {
	var c *Cues
	c.Play(CueDeath)
	c.Close()
}
