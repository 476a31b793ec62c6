// Package icon implements the animated status icons shown in banners.
// An icon draws itself in by progressively stroking a vector path once it
// has been given its final frame.
package icon

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/geom"
)

// Animatable is implemented by icons that can draw themselves in. Animate is
// expected to be called once, after the icon has a final non-zero size. It
// is fire-and-forget: there is no completion and no cancellation.
type Animatable interface {
	Animate()
}

// Icon is a status icon hosted by a banner.
type Icon interface {
	Animatable
	Kind() Kind
	Frame() geom.Rect
	SetFrame(r geom.Rect)
	Tint() color.Color
	SetTint(c color.Color)
	// Layers returns a snapshot of the drawable stroke layers in the icon's
	// own coordinate space (origin at the top-left of its frame).
	Layers() []StrokeLayer
	// Observe registers fn to be called whenever the icon needs redrawing.
	Observe(fn func())
}

// Kind enumerates the available icons.
type Kind int

const (
	KindNone Kind = iota
	KindDone
	KindError
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindDone:
		return "done"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// ParseKind converts a name to a Kind. The empty string maps to KindNone.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return KindNone, nil
	case "done", "check", "checkmark", "success":
		return KindDone, nil
	case "error", "cross", "fail":
		return KindError, nil
	default:
		return KindNone, fmt.Errorf("unknown icon %q, must be one of: none, done, error", s)
	}
}

// DefaultLineThick is the stroke width used by banners.
const DefaultLineThick = 3

// New creates the icon for kind. It returns nil for KindNone.
func New(kind Kind, lineThick float64, loop anim.Loop) Icon {
	switch kind {
	case KindDone:
		return NewCheckmark(lineThick, loop)
	case KindError:
		return NewCross(lineThick, loop)
	default:
		return nil
	}
}

// view holds the state shared by every icon: its frame, tint and layers.
type view struct {
	kind      Kind
	frame     geom.Rect
	tint      color.Color
	lineThick float64
	loop      anim.Loop
	layers    []*StrokeLayer
	observer  func()
}

func (v *view) Kind() Kind            { return v.kind }
func (v *view) Frame() geom.Rect      { return v.frame }
func (v *view) Tint() color.Color     { return v.tint }
func (v *view) Observe(fn func())     { v.observer = fn }
func (v *view) SetFrame(r geom.Rect)  { v.frame = r; v.changed() }
func (v *view) SetTint(c color.Color) { v.tint = c; v.changed() }

func (v *view) Layers() []StrokeLayer {
	out := make([]StrokeLayer, len(v.layers))
	for i, l := range v.layers {
		out[i] = *l
		out[i].Path.Points = append([]geom.Point(nil), l.Path.Points...)
	}
	return out
}

func (v *view) changed() {
	if v.observer != nil {
		v.observer()
	}
}

// addStroke appends a layer for path with the icon's stroke style and
// animates its stroke end from 0 to 1.
func (v *view) addStroke(path Path, spec anim.Spec) {
	layer := &StrokeLayer{
		Path:      path,
		LineWidth: v.lineThick,
		Cap:       CapRound,
		Join:      JoinRound,
		Color:     v.tint,
		StrokeEnd: 0,
	}
	v.layers = append(v.layers, layer)

	anim.Run(v.loop, spec, func(p float64) {
		layer.StrokeEnd = p
		v.changed()
	}, nil)
}
