package haptic

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

const (
	DefaultTickDuration  = 28 * time.Millisecond
	DefaultTickFrequency = 180.0
	tickAmplitude        = 0.6
	tickDecay            = 6.0
)

// tick is a short exponentially decaying sine burst.
type tick struct {
	pos, total int
	freq       float64
	sampleRate beep.SampleRate
}

// NewTick returns a streamer that plays a single impact tick.
func NewTick(sr beep.SampleRate, d time.Duration, freq float64) beep.Streamer {
	return &tick{total: sr.N(d), freq: freq, sampleRate: sr}
}

func (t *tick) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		secs := float64(t.pos) / float64(t.sampleRate)
		env := math.Exp(-tickDecay * float64(t.pos) / float64(t.total))
		v := tickAmplitude * env * math.Sin(2*math.Pi*t.freq*secs)
		samples[i][0], samples[i][1] = v, v
		t.pos++
		n++
	}
	return n, true
}

func (t *tick) Err() error { return nil }
