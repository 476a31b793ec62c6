package present

import (
	"image/color"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Variant distinguishes the two banner kinds.
type Variant int

const (
	VariantBar Variant = iota
	VariantTitle
)

// String returns the string representation of Variant.
func (v Variant) String() string {
	if v == VariantTitle {
		return "title"
	}
	return "bar"
}

// Style is the visual chrome of a banner.
type Style struct {
	CornerRadius float64
	Blur         theme.BlurStyle
	Tint         color.Color
}

// Element is the renderable state of a banner. Hosts read it to draw the
// banner and feed taps and bounds changes back through Tap and Resize.
type Element struct {
	id        ulid.ULID
	variant   Variant
	content   banner.Content
	style     Style
	frame     geom.Rect
	alpha     float64
	transform geom.Transform
	layout    banner.Result
	icon      icon.Icon
	tappable  bool

	onTap    func()
	onResize func(geom.Size)

	observers map[int]func(*Element)
	nextObs   int
}

func newElement(variant Variant, content banner.Content, style Style, ic icon.Icon) *Element {
	e := &Element{
		id:        ulid.Make(),
		variant:   variant,
		content:   content,
		style:     style,
		transform: geom.Identity,
		icon:      ic,
		observers: make(map[int]func(*Element)),
	}
	if ic != nil {
		ic.SetTint(style.Tint)
		ic.Observe(e.changed)
	}
	return e
}

// ID returns the banner's unique identifier.
func (e *Element) ID() ulid.ULID { return e.id }

// Variant returns the banner kind.
func (e *Element) Variant() Variant { return e.variant }

// Content returns what the banner displays.
func (e *Element) Content() banner.Content { return e.content }

// Style returns the banner chrome.
func (e *Element) Style() Style { return e.style }

// Frame returns the untransformed frame in host coordinates.
func (e *Element) Frame() geom.Rect { return e.frame }

// PresentationFrame returns the frame with the current transform applied.
func (e *Element) PresentationFrame() geom.Rect { return e.frame.Scaled(e.transform) }

// Alpha returns the current opacity in [0,1].
func (e *Element) Alpha() float64 { return e.alpha }

// Transform returns the current scale transform.
func (e *Element) Transform() geom.Transform { return e.transform }

// Layout returns the most recent internal layout, relative to Frame.
func (e *Element) Layout() banner.Result { return e.layout }

// Icon returns the status icon, or nil.
func (e *Element) Icon() icon.Icon { return e.icon }

// Tappable reports whether a tap currently dismisses the banner.
func (e *Element) Tappable() bool { return e.tappable }

// Observe registers fn to be called after every visual change. The
// returned function removes the observer.
func (e *Element) Observe(fn func(*Element)) (cancel func()) {
	id := e.nextObs
	e.nextObs++
	e.observers[id] = fn
	return func() { delete(e.observers, id) }
}

// Tap delivers a tap to the banner. It reports whether the tap was
// handled.
func (e *Element) Tap() bool {
	if !e.tappable || e.onTap == nil {
		return false
	}
	e.onTap()
	return true
}

// Resize informs the banner that the host changed its bounds.
func (e *Element) Resize(size geom.Size) {
	if e.onResize != nil {
		e.onResize(size)
	}
}

func (e *Element) setFrame(r geom.Rect) {
	e.frame = r
	e.changed()
}

func (e *Element) setLayout(r banner.Result) {
	e.layout = r
	if e.icon != nil && r.Icon != nil {
		e.icon.SetFrame(*r.Icon)
	}
	e.changed()
}

func (e *Element) setAppearance(alpha float64, t geom.Transform) {
	e.alpha = alpha
	e.transform = t
	e.changed()
}

func (e *Element) changed() {
	for _, fn := range e.observers {
		fn(e)
	}
}
