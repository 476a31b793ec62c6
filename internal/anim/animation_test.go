package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StepsFromZeroToOne(t *testing.T) {
	loop := NewManualLoop()
	var steps []float64
	done := 0

	a := Run(loop, Spec{Duration: 100 * time.Millisecond}, func(p float64) {
		steps = append(steps, p)
	}, func() { done++ })

	require.Len(t, steps, 1)
	assert.Equal(t, 0.0, steps[0])
	assert.Equal(t, 0, done)

	loop.Advance(50 * time.Millisecond)
	assert.Equal(t, 0, done)
	assert.False(t, a.Finished())

	loop.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, done)
	assert.True(t, a.Finished())
	assert.Equal(t, 1.0, steps[len(steps)-1])

	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, steps[i], steps[i-1], "progress must be monotonic")
	}
}

func TestRun_ZeroDurationCompletesOnNextTurn(t *testing.T) {
	loop := NewManualLoop()
	done := false
	Run(loop, Spec{}, nil, func() { done = true })

	assert.False(t, done)
	loop.Flush()
	assert.True(t, done)
}

func TestRun_CancelSkipsCompletion(t *testing.T) {
	loop := NewManualLoop()
	done := false
	a := Run(loop, Spec{Duration: time.Second}, nil, func() { done = true })

	loop.Advance(100 * time.Millisecond)
	assert.True(t, a.Cancel())
	assert.False(t, a.Cancel())

	loop.Advance(2 * time.Second)
	assert.False(t, done)
}

func TestEaseInEaseOut(t *testing.T) {
	assert.Equal(t, 0.0, EaseInEaseOut(0))
	assert.Equal(t, 1.0, EaseInEaseOut(1))
	assert.InDelta(t, 0.5, EaseInEaseOut(0.5), 1e-6)
	assert.Less(t, EaseInEaseOut(0.2), 0.2, "slow start")
	assert.Greater(t, EaseInEaseOut(0.8), 0.8, "slow end")

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseInEaseOut(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestLinear_Clamps(t *testing.T) {
	assert.Equal(t, 0.0, Linear(-1))
	assert.Equal(t, 1.0, Linear(2))
}
