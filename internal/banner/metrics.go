// Package banner computes the internal layout of banners: where the title,
// subtitle and icon go, and the smallest size that encloses them. Layout is
// pure; text is measured through a measure.Measurer.
package banner

import (
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/measure"
)

// Content is what a banner displays. Empty strings are treated as absent.
type Content struct {
	Title    string
	Subtitle string
	Icon     icon.Kind
}

// HasTitle reports whether the content has a title.
func (c Content) HasTitle() bool { return c.Title != "" }

// HasSubtitle reports whether the content has a subtitle.
func (c Content) HasSubtitle() bool { return c.Subtitle != "" }

// HasIcon reports whether the content has a status icon.
func (c Content) HasIcon() bool { return c.Icon != icon.KindNone }

// Metrics are the fixed spacing constants of a banner variant.
type Metrics struct {
	Margins          geom.Insets
	LabelIconGap     float64
	TitleSubtitleGap float64
	IconSize         float64
	IconLineThick    float64
	CornerRadius     float64

	// MaxWidth is the absolute width cap. HostWidthRatio, when non-zero,
	// further caps the width to a fraction of the host width.
	MaxWidth       float64
	HostWidthRatio float64

	// BottomOffset is the gap kept between a bottom-anchored banner and the
	// host's bottom safe edge.
	BottomOffset float64

	// TitleOffsetY shifts the title of the title-only variant relative to
	// the top margin.
	TitleOffsetY float64

	TitleFont    measure.Font
	SubtitleFont measure.Font
}

// DefaultBarMetrics returns the metrics of the title and subtitle banner.
func DefaultBarMetrics() Metrics {
	return Metrics{
		Margins:          geom.Uniform(8),
		LabelIconGap:     12,
		TitleSubtitleGap: 4,
		IconSize:         20,
		IconLineThick:    icon.DefaultLineThick,
		CornerRadius:     14,
		MaxWidth:         270,
		HostWidthRatio:   0.8,
		BottomOffset:     64,
		TitleFont:        measure.Font{Size: 15, Weight: measure.WeightSemibold, LineSpacing: 3},
		SubtitleFont:     measure.Font{Size: 13, LineSpacing: 2},
	}
}

// DefaultTitleMetrics returns the metrics of the compact title-only banner.
// The right margin includes the label's trailing inset.
func DefaultTitleMetrics() Metrics {
	return Metrics{
		Margins:      geom.Insets{Top: 8, Left: 8, Bottom: 8, Right: 16},
		CornerRadius: 8,
		MaxWidth:     390,
		TitleOffsetY: -3,
		TitleFont:    measure.Font{Size: 15, Weight: measure.WeightSemibold, LineSpacing: 3},
	}
}

// WidthCap returns the widest a banner may be on a host of the given width.
// A non-positive host width means the host is unknown.
func (m Metrics) WidthCap(hostWidth float64) float64 {
	limit := m.MaxWidth
	if m.HostWidthRatio > 0 && hostWidth > 0 {
		limit = min(limit, hostWidth*m.HostWidthRatio)
	}
	return limit
}

// Result is the outcome of a layout pass. Frames are relative to the
// banner's own origin; absent elements have nil frames.
type Result struct {
	Title    *geom.Rect
	Subtitle *geom.Rect
	Icon     *geom.Rect
	Size     geom.Size
}

// MaxX returns the right-most edge of any laid out element.
func (r Result) MaxX() float64 {
	maxX := 0.0
	for _, f := range []*geom.Rect{r.Title, r.Subtitle, r.Icon} {
		if f != nil {
			maxX = max(maxX, f.MaxX())
		}
	}
	return maxX
}

func rectPtr(r geom.Rect) *geom.Rect { return &r }
