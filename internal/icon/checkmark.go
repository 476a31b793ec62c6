package icon

import (
	"time"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/geom"
)

const checkmarkDuration = 300 * time.Millisecond

// Checkmark draws a tick: a short down-stroke followed by a long up-stroke.
type Checkmark struct {
	view
}

// NewCheckmark creates a checkmark icon stroked at lineThick.
func NewCheckmark(lineThick float64, loop anim.Loop) *Checkmark {
	return &Checkmark{view: view{kind: KindDone, lineThick: lineThick, loop: loop}}
}

// CheckmarkPath returns the tick path for a square of side length.
func CheckmarkPath(length float64) Path {
	return Polyline(
		geom.Point{X: length * 0.196, Y: length * 0.527},
		geom.Point{X: length * 0.47, Y: length * 0.777},
		geom.Point{X: length * 0.99, Y: length * 0.25},
	)
}

// Animate implements Animatable.
func (c *Checkmark) Animate() {
	c.addStroke(CheckmarkPath(c.frame.Width), anim.Spec{
		Duration: checkmarkDuration,
		Curve:    anim.EaseInEaseOut,
	})
}
