package haptic

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPlayer returns a player that records streamers instead of opening
// an audio device.
func newTestPlayer(played *[]beep.Streamer) *Player {
	p := NewPlayer(nil)
	p.initialized = true
	p.play = func(s beep.Streamer) { *played = append(*played, s) }
	return p
}

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestTick_LengthAndDecay(t *testing.T) {
	sr := beep.SampleRate(44100)
	samples := drain(NewTick(sr, DefaultTickDuration, DefaultTickFrequency))

	require.Len(t, samples, sr.N(DefaultTickDuration))

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			m = max(m, s[0], -s[0])
		}
		return m
	}
	n := len(samples)
	assert.Greater(t, peak(0, n/4), peak(3*n/4, n))
	assert.LessOrEqual(t, peak(0, n), tickAmplitude)
	for _, s := range samples {
		assert.Equal(t, s[0], s[1])
	}
}

func TestPlayer_SetVolumeClamps(t *testing.T) {
	p := NewPlayer(nil)
	p.SetVolume(2)
	assert.Equal(t, 1.0, p.Volume())
	p.SetVolume(-1)
	assert.Equal(t, 0.0, p.Volume())
}

func TestVolumeToDecibels(t *testing.T) {
	assert.InDelta(t, -6.02, VolumeToDecibels(0.5), 0.01)
	assert.InDelta(t, 0, VolumeToDecibels(1), 1e-9)
	assert.Equal(t, -100.0, VolumeToDecibels(0))
}

func TestPlayer_PlayTickAppliesVolume(t *testing.T) {
	var played []beep.Streamer
	p := newTestPlayer(&played)

	require.NoError(t, p.PlayTick())
	require.Len(t, played, 1)
	assert.IsType(t, &tick{}, played[0])

	p.SetVolume(0.5)
	require.NoError(t, p.PlayTick())
	require.Len(t, played, 2)
	assert.IsType(t, &effects.Volume{}, played[1])
}

func TestPlayer_PlayFileWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "impact.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, NewTick(format.SampleRate, 20*time.Millisecond, 220), format))
	require.NoError(t, f.Close())

	var played []beep.Streamer
	p := newTestPlayer(&played)

	require.NoError(t, p.PlayFile(path))
	require.NoError(t, p.PlayFile(path))
	assert.Len(t, played, 2)
	assert.Len(t, p.cache, 1)
}

func TestPlayer_PlayFileErrors(t *testing.T) {
	var played []beep.Streamer
	p := newTestPlayer(&played)

	assert.Error(t, p.PlayFile(filepath.Join(t.TempDir(), "missing.wav")))

	path := filepath.Join(t.TempDir(), "sound.flac")
	require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0o644))
	err := p.PlayFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported audio format")
	assert.Empty(t, played)
}

func TestImpactor(t *testing.T) {
	var played []beep.Streamer
	p := newTestPlayer(&played)

	NewImpactor(p, "", nil).Impact()
	assert.Len(t, played, 1)

	bad := NewImpactor(p, "/nonexistent/impact.ogg", nil)
	assert.NotPanics(t, bad.Impact)
	assert.Len(t, played, 1)
	assert.Error(t, bad.Preload())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds/tick.wav"), ExpandPath("~/sounds/tick.wav"))
	assert.Equal(t, "/abs/tick.wav", ExpandPath("/abs/tick.wav"))
}
