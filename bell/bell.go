// Package bell plays an audible tone for BEL bytes written to the host terminal engine.
// Audio is optional: every operation degrades to a no-op when no output device exists.
package bell

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// Config controls tone shape and rate limiting
type Config struct {
	SampleRate  int
	Frequency   float64       // Hz
	Duration    time.Duration // per ring
	Volume      float64       // 0.0-1.0
	MinInterval time.Duration // rings closer than this are dropped
}

// DefaultConfig returns a short 880 Hz blip
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Frequency:   880,
		Duration:    60 * time.Millisecond,
		Volume:      0.5,
		MinInterval: 100 * time.Millisecond,
	}
}

// Bell manages the speaker and rings on demand
type Bell struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	lastRing    time.Time
	now         func() time.Time
}

// New creates a bell; call Initialize before it makes sound
func New(cfg Config) *Bell {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Bell{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize opens the speaker. Safe to call repeatedly.
func (b *Bell) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	sr := beep.SampleRate(b.cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup silences pending rings and detaches from the speaker
func (b *Bell) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker Close; clearing the mixer leaves it silent
	b.initialized = false
}

// Ring queues one tone. Returns without blocking; a ring inside MinInterval of the previous
// one, or before Initialize, is dropped.
func (b *Bell) Ring() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	now := b.now()
	if !b.lastRing.IsZero() && now.Sub(b.lastRing) < b.cfg.MinInterval {
		return
	}
	b.lastRing = now

	tone, err := Tone(b.cfg)
	if err != nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(tone)
	speaker.Unlock()
}

// Tone builds a finite sine streamer for cfg
func Tone(cfg Config) (beep.Streamer, error) {
	sr := beep.SampleRate(cfg.SampleRate)
	sine, err := generators.SineTone(sr, cfg.Frequency)
	if err != nil {
		return nil, err
	}
	vol := cfg.Volume
	if vol < 0 {
		vol = 0
	}
	if vol > 1 {
		vol = 1
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(cfg.Duration), sine),
		Base:     2,
		Volume:   vol - 1, // log2 gain: 1.0 is unity, 0.5 is -6 dB
		Silent:   vol == 0,
	}, nil
}
