package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daydream/internal/reveal/jumpscare"
)

func drain(t *testing.T, s beep.Streamer) (total int, peak float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
		require.Less(t, total, int(sampleRate)*10, "stream never ends")
	}
}

func TestToneLengthAndRange(t *testing.T) {
	for _, w := range []Wave{WaveSine, WaveSaw, WaveNoise} {
		n, peak := drain(t, Tone(440, 100*time.Millisecond, w, sampleRate))
		assert.Equal(t, sampleRate.N(100*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.0)
	}
}

func TestFadeEdgesAreQuiet(t *testing.T) {
	d := 50 * time.Millisecond
	s := Fade(Tone(0, d, WaveNoise, sampleRate), d, 10*time.Millisecond, 10*time.Millisecond, sampleRate)
	buf := make([][2]float64, sampleRate.N(d))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)
	assert.Zero(t, buf[0][0])
	assert.InDelta(t, 0, buf[n-1][0], 0.01)
}

func TestStings(t *testing.T) {
	assert.Nil(t, Sting(jumpscare.PhaseSilence))
	assert.Nil(t, Sting(jumpscare.PhaseEnd))
	for _, ph := range []jumpscare.Phase{jumpscare.PhaseTypingOne, jumpscare.PhaseTypingTwo, jumpscare.PhaseTerminalLog} {
		s := Sting(ph)
		require.NotNil(t, s, ph)
		n, _ := drain(t, s)
		assert.Positive(t, n, ph)
	}
}

func TestDisabledPlayerIsNoop(t *testing.T) {
	p := New(false, 1)
	require.NoError(t, p.Init())
	p.OnPhase(jumpscare.PhaseTypingOne)
	assert.Empty(t, p.Played())
	p.Close()
}

func TestPlayerRecordsWithoutDevice(t *testing.T) {
	// Without Init the speaker is never opened, but requests are tracked.
	p := New(true, 0.5)
	p.OnPhase(jumpscare.PhaseTypingOne)
	p.OnPhase(jumpscare.PhaseEnd)
	assert.Equal(t, []jumpscare.Phase{jumpscare.PhaseTypingOne, jumpscare.PhaseEnd}, p.Played())
}
