package icon

import (
	"time"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/geom"
)

const crossDuration = 220 * time.Millisecond

// Cross draws an X as two independent diagonal strokes that animate
// concurrently.
type Cross struct {
	view
}

// NewCross creates a cross icon stroked at lineThick.
func NewCross(lineThick float64, loop anim.Loop) *Cross {
	return &Cross{view: view{kind: KindError, lineThick: lineThick, loop: loop}}
}

// CrossPaths returns the top-left to bottom-right and bottom-left to
// top-right diagonals for a square of side length.
func CrossPaths(length float64) (Path, Path) {
	down := Polyline(geom.Point{X: 0, Y: 0}, geom.Point{X: length, Y: length})
	up := Polyline(geom.Point{X: 0, Y: length}, geom.Point{X: length, Y: 0})
	return down, up
}

// Animate implements Animatable.
func (c *Cross) Animate() {
	down, up := CrossPaths(c.frame.Width)
	spec := anim.Spec{Duration: crossDuration, Curve: anim.EaseInEaseOut}
	c.addStroke(down, spec)
	c.addStroke(up, spec)
}
