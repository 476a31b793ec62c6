// Package geom provides the small set of value types used to describe banner
// frames: points, sizes, rectangles, insets and scale transforms.
package geom

import "math"

// Point is a location in logical units.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in logical units.
type Size struct {
	Width, Height float64
}

// IsZero reports whether either dimension is zero or negative.
func (s Size) IsZero() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFrom builds a rectangle from an origin and a size.
func RectFrom(origin Point, size Size) Rect {
	return Rect{X: origin.X, Y: origin.Y, Width: size.Width, Height: size.Height}
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }
func (r Rect) MidX() float64 { return r.X + r.Width/2 }
func (r Rect) MidY() float64 { return r.Y + r.Height/2 }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point { return Point{X: r.MidX(), Y: r.MidY()} }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// WithCenterX returns r moved horizontally so that its midpoint is x.
func (r Rect) WithCenterX(x float64) Rect {
	r.X = x - r.Width/2
	return r
}

// WithCenterY returns r moved vertically so that its midpoint is y.
func (r Rect) WithCenterY(y float64) Rect {
	r.Y = y - r.Height/2
	return r
}

// Scaled returns r scaled about its own center.
func (r Rect) Scaled(t Transform) Rect {
	c := r.Center()
	w := r.Width * t.ScaleX
	h := r.Height * t.ScaleY
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Insets are distances from the edges of a rectangle.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Uniform returns insets with the same value on every edge.
func Uniform(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Transform is a scale about the center of the transformed element.
// The zero value is treated as the identity.
type Transform struct {
	ScaleX, ScaleY float64
}

// Identity is the transform that leaves geometry untouched.
var Identity = Transform{ScaleX: 1, ScaleY: 1}

// Scale returns a uniform scale transform.
func Scale(f float64) Transform {
	return Transform{ScaleX: f, ScaleY: f}
}

// IsIdentity reports whether t leaves geometry untouched.
func (t Transform) IsIdentity() bool {
	t = t.normalized()
	return t.ScaleX == 1 && t.ScaleY == 1
}

// Concat returns t followed by u.
func (t Transform) Concat(u Transform) Transform {
	t, u = t.normalized(), u.normalized()
	return Transform{ScaleX: t.ScaleX * u.ScaleX, ScaleY: t.ScaleY * u.ScaleY}
}

func (t Transform) normalized() Transform {
	if t.ScaleX == 0 && t.ScaleY == 0 {
		return Identity
	}
	return t
}

// Lerp interpolates between a and b by p in [0,1].
func Lerp(a, b, p float64) float64 {
	return a*(1-p) + b*p
}

// LerpTransform interpolates each scale component of two transforms.
func LerpTransform(a, b Transform, p float64) Transform {
	a, b = a.normalized(), b.normalized()
	return Transform{ScaleX: Lerp(a.ScaleX, b.ScaleX, p), ScaleY: Lerp(a.ScaleY, b.ScaleY, p)}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
