package anim

import "math"

// Curve maps linear progress in [0,1] to eased progress.
type Curve func(t float64) float64

// Linear leaves progress untouched.
func Linear(t float64) float64 { return clamp01(t) }

// EaseInEaseOut is the standard ease-in-ease-out timing curve,
// cubic-bezier(0.42, 0, 0.58, 1).
var EaseInEaseOut = CubicBezier(0.42, 0, 0.58, 1)

// CubicBezier returns a timing curve with control points (x1,y1) and
// (x2,y2); the end points are fixed at (0,0) and (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	bx := func(s float64) float64 { return bezier(s, x1, x2) }
	by := func(s float64) float64 { return bezier(s, y1, y2) }
	dx := func(s float64) float64 { return bezierSlope(s, x1, x2) }

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}

		// Newton-Raphson on x(s) = t, falling back to bisection.
		s := t
		for range 8 {
			err := bx(s) - t
			if math.Abs(err) < 1e-7 {
				return by(s)
			}
			slope := dx(s)
			if math.Abs(slope) < 1e-6 {
				break
			}
			s -= err / slope
		}

		lo, hi := 0.0, 1.0
		s = t
		for range 50 {
			x := bx(s)
			if math.Abs(x-t) < 1e-7 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return by(s)
	}
}

func bezier(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(s, p1, p2 float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
