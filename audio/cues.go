package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/basin/config"
)

// Cue names a sound event.
type Cue int

const (
	CueWarning Cue = iota
	CueDeath
	CueVictory
	CueDrop
)

// Cues plays event sounds through the system speaker.
// A nil *Cues is valid and silent.
type Cues struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	mixer  *beep.Mixer

	// warning is rate limited so a sustained warning does not buzz every frame
	lastWarning time.Time
	warnEvery   time.Duration
}

// NewCues initializes the speaker. Returns nil, nil when audio is disabled.
func NewCues(cfg config.AudioConfig) (*Cues, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	c := &Cues{
		rate:      rate,
		volume:    cfg.Volume,
		mixer:     &beep.Mixer{},
		warnEvery: 2 * time.Second,
	}
	speaker.Play(c.mixer)
	return c, nil
}

// Play queues the sound for cue.
func (c *Cues) Play(cue Cue) {
	if c == nil {
		return
	}
	s := c.build(cue)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

func (c *Cues) build(cue Cue) beep.Streamer {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch cue {
	case CueWarning:
		now := time.Now()
		if now.Sub(c.lastWarning) < c.warnEvery {
			return nil
		}
		c.lastWarning = now
		return WarningSound(c.rate, c.volume)
	case CueDeath:
		return DeathSound(c.rate, c.volume)
	case CueVictory:
		return VictorySound(c.rate, c.volume)
	case CueDrop:
		return DropSound(c.rate, c.volume)
	}
	return nil
}

// Close silences everything queued.
func (c *Cues) Close() {
	if c == nil {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
}
