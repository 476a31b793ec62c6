package banner

import (
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/measure"
)

// minLabelWidth keeps a constrained label from being measured at its
// natural width when the banner is narrower than its fixed chrome.
const minLabelWidth = 1

// Engine lays out the title and subtitle banner.
type Engine struct {
	Metrics  Metrics
	Measurer measure.Measurer
}

// NewEngine creates an engine. A nil measurer falls back to
// measure.DefaultMonospace.
func NewEngine(metrics Metrics, m measure.Measurer) *Engine {
	if m == nil {
		m = measure.DefaultMonospace()
	}
	return &Engine{Metrics: metrics, Measurer: m}
}

// Intrinsic lays content out at its natural width. The reported width is the
// right-most element plus the right margin.
func (e *Engine) Intrinsic(c Content) Result {
	return e.layout(c, 0, 0)
}

// Constrained lays content out inside a banner maxWidth wide, wrapping the
// labels to fit.
func (e *Engine) Constrained(c Content, maxWidth float64) Result {
	return e.layout(c, maxWidth, 0)
}

// Relayout lays content out against final banner bounds. The icon is
// centered against the bounds height rather than the content height.
func (e *Engine) Relayout(c Content, bounds geom.Size) Result {
	return e.layout(c, bounds.Width, bounds.Height)
}

// SizeThatFits sizes content for a host of the given width: an intrinsic
// pass finds the natural width, which is clamped to the width cap, and a
// constrained pass at that width yields the wrapped height.
func (e *Engine) SizeThatFits(c Content, hostWidth float64) Result {
	natural := e.Intrinsic(c)
	width := min(natural.Size.Width, e.Metrics.WidthCap(hostWidth))
	return e.Constrained(c, width)
}

// layout runs one pass. maxWidth <= 0 selects intrinsic mode; frameHeight
// <= 0 centers the icon against the computed height.
func (e *Engine) layout(c Content, maxWidth, frameHeight float64) Result {
	m := e.Metrics
	var res Result

	x := m.Margins.Left
	if c.HasIcon() {
		box := geom.Rect{X: m.Margins.Left, Y: 0, Width: m.IconSize, Height: m.IconSize}
		res.Icon = &box
		x = box.MaxX() + m.LabelIconGap
	}

	wrap := 0.0
	if maxWidth > 0 {
		wrap = max(maxWidth-x-m.Margins.Right, minLabelWidth)
	}

	bottom := m.Margins.Top
	if c.HasTitle() {
		size := e.Measurer.Measure(c.Title, m.TitleFont, wrap)
		res.Title = rectPtr(geom.RectFrom(geom.Point{X: x, Y: m.Margins.Top}, size))
		bottom = res.Title.MaxY()
	}
	if c.HasSubtitle() {
		y := m.Margins.Top
		if res.Title != nil {
			y = res.Title.MaxY() + m.TitleSubtitleGap
		}
		size := e.Measurer.Measure(c.Subtitle, m.SubtitleFont, wrap)
		res.Subtitle = rectPtr(geom.RectFrom(geom.Point{X: x, Y: y}, size))
		bottom = res.Subtitle.MaxY()
	}

	height := bottom + m.Margins.Bottom
	if res.Icon != nil {
		height = max(height, m.Margins.Top+m.IconSize+m.Margins.Bottom)
	}

	width := maxWidth
	if maxWidth <= 0 {
		width = res.MaxX() + m.Margins.Right
	}
	res.Size = geom.Size{Width: width, Height: height}

	if res.Icon != nil {
		h := frameHeight
		if h <= 0 {
			h = height
		}
		*res.Icon = res.Icon.WithCenterY(h / 2)
	}
	return res
}
