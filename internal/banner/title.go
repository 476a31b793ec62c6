package banner

import (
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/measure"
)

// TitleEngine lays out the title-only banner. Its height is fixed by the
// caller; only the width follows the content.
type TitleEngine struct {
	Metrics  Metrics
	Measurer measure.Measurer
	Height   float64
}

// NewTitleEngine creates a title-only engine whose label is height tall.
func NewTitleEngine(metrics Metrics, m measure.Measurer, height float64) *TitleEngine {
	if m == nil {
		m = measure.DefaultMonospace()
	}
	return &TitleEngine{Metrics: metrics, Measurer: m, Height: height}
}

// Layout places the title inside a banner available units wide. A
// non-positive width lays out against the absolute cap.
func (e *TitleEngine) Layout(title string, available float64) Result {
	m := e.Metrics
	if available <= 0 {
		available = m.MaxWidth
	}

	res := Result{Size: geom.Size{Width: available, Height: e.Height + m.Margins.Bottom}}
	if title == "" {
		return res
	}

	labelWidth := max(available-m.Margins.Left-m.Margins.Right, 0)
	natural := e.Measurer.Measure(title, m.TitleFont, 0)
	res.Title = &geom.Rect{
		X:      m.Margins.Left,
		Y:      m.Margins.Top + m.TitleOffsetY,
		Width:  min(natural.Width, labelWidth),
		Height: e.Height,
	}
	return res
}

// SizeThatFits lays the title out against the width cap, shrinks the banner
// to the title plus margins and lays it out again at that width.
func (e *TitleEngine) SizeThatFits(title string) Result {
	first := e.Layout(title, e.Metrics.MaxWidth)
	width := min(first.MaxX()+e.Metrics.Margins.Right, e.Metrics.MaxWidth)
	return e.Layout(title, width)
}
