// Package audio plays short synthesized cues for basin events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveTriangle
	WaveSquare
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	length   int
	position int
}

// NewTone creates a streamer that plays freq for d and then drains.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate, length: rate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		case WaveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade shapes a stream with a linear attack and release.
type fade struct {
	streamer beep.Streamer
	attack   int
	release  int
	total    int
	position int
}

// NewFade wraps s with attack and release ramps over a total length d.
func NewFade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, i > 0
		}
		gain := 1.0
		if f.attack > 0 && f.position < f.attack {
			gain = float64(f.position) / float64(f.attack)
		}
		if left := f.total - f.position; f.release > 0 && left < f.release {
			gain = math.Min(gain, float64(left)/float64(f.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// withVolume scales s linearly by vol. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is one step of a jingle.
type note struct {
	freq float64
	dur  time.Duration
}

func jingle(notes []note, wave Wave, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		osc := NewTone(n.freq, n.dur, wave, rate)
		parts[i] = NewFade(osc, n.dur, 5*time.Millisecond, n.dur/3, rate)
	}
	return beep.Seq(parts...)
}

// WarningSound is a short double chirp.
func WarningSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(jingle([]note{
		{1320, 70 * time.Millisecond},
		{0, 40 * time.Millisecond},
		{1320, 70 * time.Millisecond},
	}, WaveTriangle, rate), vol)
}

// DeathSound is a falling square-wave tone.
func DeathSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(jingle([]note{
		{392, 180 * time.Millisecond},
		{330, 180 * time.Millisecond},
		{262, 180 * time.Millisecond},
		{196, 400 * time.Millisecond},
	}, WaveSquare, rate), vol*0.5)
}

// VictorySound is a rising major arpeggio over a held root.
func VictorySound(rate beep.SampleRate, vol float64) beep.Streamer {
	arp := jingle([]note{
		{523, 120 * time.Millisecond},
		{659, 120 * time.Millisecond},
		{784, 120 * time.Millisecond},
		{1047, 360 * time.Millisecond},
	}, WaveSine, rate)
	root := NewFade(NewTone(262, 720*time.Millisecond, WaveSine, rate), 720*time.Millisecond,
		20*time.Millisecond, 300*time.Millisecond, rate)
	return withVolume(beep.Mix(withVolume(arp, 0.7), withVolume(root, 0.3)), vol)
}

// DropSound is a soft plop for a mineral drop.
func DropSound(rate beep.SampleRate, vol float64) beep.Streamer {
	d := 90 * time.Millisecond
	return withVolume(NewFade(NewTone(180, d, WaveSine, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate), vol)
}
