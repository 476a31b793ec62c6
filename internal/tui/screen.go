package tui

import (
	"slices"

	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// TitleHeight is the label height of the title-only banner in rows. With
// the bottom margin it gives a three row banner.
const TitleHeight = 2

// BarMetrics returns bar metrics in terminal cells. The one cell top and
// bottom margins hold the border; the two cell side margins hold the
// border and a space of padding.
func BarMetrics() banner.Metrics {
	return banner.Metrics{
		Margins:        geom.Insets{Top: 1, Left: 2, Bottom: 1, Right: 2},
		LabelIconGap:   1,
		IconSize:       1,
		MaxWidth:       48,
		HostWidthRatio: 0.8,
		BottomOffset:   1,
	}
}

// TitleMetrics returns title-only metrics in terminal cells.
func TitleMetrics() banner.Metrics {
	return banner.Metrics{
		Margins:  geom.Insets{Top: 1, Left: 2, Bottom: 1, Right: 2},
		MaxWidth: 60,
	}
}

// Screen is a present.Host measured in terminal cells. The bottom row is
// reserved for the help line.
type Screen struct {
	width, height int
	insets        geom.Insets
	children      []*present.Element
}

// NewScreen creates a screen of the given size.
func NewScreen(width, height int) *Screen {
	return &Screen{
		width:  width,
		height: height,
		insets: geom.Insets{Bottom: 1},
	}
}

// AttachChild implements present.Host.
func (s *Screen) AttachChild(e *present.Element) {
	s.children = append(s.children, e)
}

// DetachChild implements present.Host.
func (s *Screen) DetachChild(e *present.Element) {
	if i := slices.Index(s.children, e); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
}

// Bounds implements present.Host.
func (s *Screen) Bounds() geom.Rect {
	return geom.Rect{Width: float64(s.width), Height: float64(s.height)}
}

// SafeInsets implements present.Host.
func (s *Screen) SafeInsets() geom.Insets {
	return s.insets
}

// Children returns the attached banners, bottom-most first.
func (s *Screen) Children() []*present.Element {
	return slices.Clone(s.children)
}

// SetSize resizes the screen and gives every banner a layout pass.
func (s *Screen) SetSize(width, height int) {
	s.width, s.height = width, height
	for _, e := range s.Children() {
		e.Resize(e.Frame().Size())
	}
}

// HitTest returns the top-most banner under the cell at (x, y).
func (s *Screen) HitTest(x, y int) *present.Element {
	p := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	for i := len(s.children) - 1; i >= 0; i-- {
		if s.children[i].PresentationFrame().Contains(p) {
			return s.children[i]
		}
	}
	return nil
}

// Tap delivers a tap at (x, y). It reports whether a banner handled it.
func (s *Screen) Tap(x, y int) bool {
	if e := s.HitTest(x, y); e != nil {
		return e.Tap()
	}
	return false
}

// Render draws the attached banners over base, which is padded or cut to
// the screen size.
func (s *Screen) Render(base []string, a theme.Appearance) []string {
	lines := make([]string, s.height)
	copy(lines, base)
	for _, e := range s.children {
		layer, x, y := renderElement(e, a)
		lines = overlay(lines, s.width, layer, x, y)
	}
	return lines
}
