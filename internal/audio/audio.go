// Package audio plays the game's synthesized sound cues through the
// system speaker. Every operation degrades to a no-op when the speaker
// could not be initialized or the player is muted.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-pang/internal/core"
)

const (
	sampleRate          = beep.SampleRate(44100)
	speakerBufferMs     = 100
	popFrequencyHz      = 660.0
	popDurationMs       = 60
	popGain             = 0.25
	arenaHalfWidthUnits = 15.0 // Horizontal distance mapped to a full left/right pan
)

// Player mixes fire-and-forget cues into a single speaker stream.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	logger      *log.Logger
}

// NewPlayer creates a player. Call Initialize before sounds become audible.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize sets up the speaker. Calling it twice is a no-op.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferMs)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything still queued in the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted toggles output without tearing down the speaker.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// PlaySound queues a cue panned by the horizontal world position.
func (p *Player) PlaySound(s core.Sound, pos core.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	var streamer beep.Streamer
	switch s {
	case core.SoundPop:
		pop, err := PopStreamer(sampleRate, PanFor(pos))
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("could not build pop sound", "error", err)
			}
			return
		}
		streamer = pop
	default:
		return
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
}

// PopStreamer returns a short sine blip at the given stereo pan (-1 to 1).
func PopStreamer(sr beep.SampleRate, pan float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, popFrequencyHz)
	if err != nil {
		return nil, fmt.Errorf("audio: sine tone: %w", err)
	}

	blip := beep.Take(sr.N(time.Millisecond*popDurationMs), sine)
	quiet := &effects.Gain{Streamer: blip, Gain: popGain - 1}
	return &effects.Pan{Streamer: quiet, Pan: pan}, nil
}

// PanFor maps a world position to a stereo pan in [-1, 1].
func PanFor(pos core.Vec2) float64 {
	return core.ClampF(pos.X/arenaHalfWidthUnits, -1, 1)
}
