package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

// Tone returns a finite streamer of one wave at freq.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v
		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade shapes a streamer with a linear attack and release.
type fade struct {
	s                      beep.Streamer
	position               int
	attack, release, total int
}

// Fade wraps s with a linear attack and release over a total duration d.
func Fade(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{s: s, attack: rate.N(attack), release: rate.N(release), total: rate.N(d)}
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		if f.position >= f.total {
			return i, i > 0
		}
		g := 1.0
		if f.attack > 0 && f.position < f.attack {
			g = float64(f.position) / float64(f.attack)
		}
		if rs := f.total - f.release; f.release > 0 && f.position >= rs {
			g = float64(f.total-f.position) / float64(f.release)
		}
		samples[i][0] *= g
		samples[i][1] *= g
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// gain applies a linear volume; zero silences.
func gain(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
