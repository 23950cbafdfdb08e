// Package audio plays short synthesized stings while the jumpscare runs.
// It is optional: when disabled, or when no output device is available,
// every call is a no-op.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"daydream/internal/logging"
	"daydream/internal/reveal/jumpscare"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker mixer.
type Player struct {
	mu      sync.Mutex
	enabled bool
	volume  float64
	mixer   *beep.Mixer
	ready   bool
	played  []jumpscare.Phase
}

// New creates a player. Nothing touches the audio device until Init.
func New(enabled bool, volume float64) *Player {
	return &Player{enabled: enabled, volume: volume, mixer: &beep.Mixer{}}
}

// Init opens the speaker. A failure disables the player and is returned for
// logging only.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		logging.Get(logging.CategoryAudio).Warn("speaker unavailable: %v", err)
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	logging.Get(logging.CategoryAudio).Info("speaker ready at %d Hz", sampleRate)
	return nil
}

// OnPhase is the jumpscare phase hook.
func (p *Player) OnPhase(ph jumpscare.Phase) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	p.played = append(p.played, ph)
	if !p.ready {
		return
	}
	if ph == jumpscare.PhaseEnd {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
		return
	}
	s := Sting(ph)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(gain(s, p.volume))
	speaker.Unlock()
	logging.Get(logging.CategoryAudio).Debug("sting for %s", ph)
}

// Played lists the phases a sting was requested for.
func (p *Player) Played() []jumpscare.Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]jumpscare.Phase(nil), p.played...)
}

// Close silences the mixer.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}

// Sting returns the sound for entering a phase, or nil for silence.
func Sting(ph jumpscare.Phase) beep.Streamer {
	switch ph {
	case jumpscare.PhaseTypingOne:
		d := 1200 * time.Millisecond
		return Fade(Tone(55, d, WaveSine, sampleRate), d, 400*time.Millisecond, 600*time.Millisecond, sampleRate)
	case jumpscare.PhaseTypingTwo:
		d := 900 * time.Millisecond
		return beep.Mix(
			Fade(Tone(110, d, WaveSaw, sampleRate), d, 20*time.Millisecond, 400*time.Millisecond, sampleRate),
			gain(Fade(Tone(0, d, WaveNoise, sampleRate), d, 10*time.Millisecond, 600*time.Millisecond, sampleRate), 0.3),
		)
	case jumpscare.PhaseTerminalLog:
		d := 250 * time.Millisecond
		return Fade(Tone(0, d, WaveNoise, sampleRate), d, 5*time.Millisecond, 200*time.Millisecond, sampleRate)
	}
	return nil
}
