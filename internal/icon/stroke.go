package icon

import (
	"image/color"

	"github.com/jmylchreest/alertkit/internal/geom"
)

// LineCap is the shape at the ends of an open stroke.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
)

// LineJoin is the shape where two stroke segments meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
)

// StrokeLayer is a drawable path whose visible portion is controlled by
// StrokeEnd, the fraction of the path length that is stroked.
type StrokeLayer struct {
	Path      Path
	LineWidth float64
	Cap       LineCap
	Join      LineJoin
	Color     color.Color
	StrokeEnd float64
}

// Visible returns the portion of the path that should currently be drawn.
func (l StrokeLayer) Visible() []geom.Point {
	return l.Path.Partial(l.StrokeEnd)
}

// Path is an open polyline.
type Path struct {
	Points []geom.Point
}

// Polyline builds a path through the given points.
func Polyline(points ...geom.Point) Path {
	return Path{Points: points}
}

// Length returns the total length of the polyline.
func (p Path) Length() float64 {
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += geom.Distance(p.Points[i-1], p.Points[i])
	}
	return total
}

// Partial returns the leading part of the path covering fraction of its
// length. A zero-length path yields its first point only.
func (p Path) Partial(fraction float64) []geom.Point {
	if len(p.Points) == 0 {
		return nil
	}
	if fraction <= 0 {
		return []geom.Point{p.Points[0]}
	}
	total := p.Length()
	if total == 0 {
		return []geom.Point{p.Points[0]}
	}
	if fraction >= 1 {
		return append([]geom.Point(nil), p.Points...)
	}

	remaining := total * fraction
	out := []geom.Point{p.Points[0]}
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		seg := geom.Distance(a, b)
		if seg >= remaining {
			t := 0.0
			if seg > 0 {
				t = remaining / seg
			}
			return append(out, geom.Point{X: geom.Lerp(a.X, b.X, t), Y: geom.Lerp(a.Y, b.Y, t)})
		}
		remaining -= seg
		out = append(out, b)
	}
	return out
}
