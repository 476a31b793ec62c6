package display

import (
	"math"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/diamondburned/gotk4/pkg/pango"

	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/measure"
)

// PangoMeasurer measures text the way banner labels render it, using an
// offscreen label. It must be used on the GTK main thread.
type PangoMeasurer struct {
	label *gtk.Label
}

// NewPangoMeasurer creates a measurer. GTK must be initialized.
func NewPangoMeasurer() *PangoMeasurer {
	label := gtk.NewLabel("")
	label.SetWrap(true)
	label.SetWrapMode(pango.WrapWordChar)
	return &PangoMeasurer{label: label}
}

// Measure implements measure.Measurer.
func (m *PangoMeasurer) Measure(text string, font measure.Font, wrapWidth float64) geom.Size {
	if text == "" {
		return geom.Size{}
	}
	m.label.SetText(text)
	m.label.SetAttributes(fontAttributes(font))

	_, natural, _, _ := m.label.Measure(gtk.OrientationHorizontal, -1)
	width := float64(natural)
	_, unwrapped, _, _ := m.label.Measure(gtk.OrientationVertical, natural)
	if wrapWidth > 0 && width > wrapWidth {
		width = wrapWidth
	}
	_, height, _, _ := m.label.Measure(gtk.OrientationVertical, int(math.Ceil(width)))

	// Pango has no per-label line spacing below 1.50, so add it per line.
	explicit := strings.Count(text, "\n") + 1
	lineHeight := float64(unwrapped) / float64(explicit)
	if lines := math.Round(float64(height) / lineHeight); lines > 1 {
		height += int(math.Round((lines - 1) * font.LineSpacing))
	}
	return geom.Size{Width: width, Height: float64(height)}
}

// fontAttributes maps a layout font onto Pango attributes. The same
// attributes are set on the rendered labels so measurement and rendering
// agree.
func fontAttributes(font measure.Font) *pango.AttrList {
	attrs := pango.NewAttrList()
	if font.Family != "" {
		attrs.Insert(pango.NewAttrFamily(font.Family))
	}
	if font.Size > 0 {
		attrs.Insert(pango.NewAttrSize(int(font.Size * pango.SCALE)))
	}
	if font.Weight == measure.WeightSemibold {
		attrs.Insert(pango.NewAttrWeight(pango.WeightSemibold))
	}
	return attrs
}
