package tui

import (
	"image/color"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Cell classes select the style a cell is drawn with.
const (
	classChrome = iota
	classTitle
	classSubtitle
	classIcon
	numClasses
)

// wide marks the cell covered by the right half of a double-width rune.
const wide rune = 0

// canvas is a fixed grid of styled cells.
type canvas struct {
	w, h  int
	cells [][]rune
	class [][]int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]rune, h), class: make([][]int, h)}
	for y := range h {
		c.cells[y] = []rune(strings.Repeat(" ", w))
		c.class[y] = make([]int, w)
	}
	return c
}

// put writes s at (x, y), stopping before column limit.
func (c *canvas) put(x, y int, s string, limit, class int) {
	if y < 0 || y >= c.h {
		return
	}
	limit = min(limit, c.w)
	col := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col+rw > limit {
			break
		}
		if col >= 0 {
			c.cells[y][col] = r
			c.class[y][col] = class
			if rw == 2 {
				c.cells[y][col+1] = wide
				c.class[y][col+1] = class
			}
		}
		col += rw
	}
}

// text wraps s to the unscaled width of r and draws it scaled, clipped to
// the scaled rect and the inside of the border.
func (c *canvas) text(s string, r *geom.Rect, sx, sy float64, class int) {
	if s == "" || r == nil {
		return
	}
	rows := max(1, round(r.Height*sy))
	limit := min(round(r.MaxX()*sx), c.w-1)
	x, y := round(r.X*sx), round(r.Y*sy)
	for i, line := range measure.Wrap(s, int(math.Round(r.Width))) {
		if i >= rows {
			break
		}
		c.put(x, y+i, line, limit, class)
	}
}

func (c *canvas) border(b lipgloss.Border) {
	if c.w < 2 || c.h < 2 {
		return
	}
	set := func(x, y int, s string) {
		r, _ := utf8.DecodeRuneInString(s)
		c.cells[y][x] = r
		c.class[y][x] = classChrome
	}
	for x := 1; x < c.w-1; x++ {
		set(x, 0, b.Top)
		set(x, c.h-1, b.Bottom)
	}
	for y := 1; y < c.h-1; y++ {
		set(0, y, b.Left)
		set(c.w-1, y, b.Right)
	}
	set(0, 0, b.TopLeft)
	set(c.w-1, 0, b.TopRight)
	set(0, c.h-1, b.BottomLeft)
	set(c.w-1, c.h-1, b.BottomRight)
}

// lines renders every row, grouping runs of cells with the same class.
func (c *canvas) lines(styles [numClasses]lipgloss.Style) []string {
	out := make([]string, c.h)
	for y := range c.h {
		var row, run strings.Builder
		class := -1
		flush := func() {
			if run.Len() > 0 {
				row.WriteString(styles[class].Render(run.String()))
				run.Reset()
			}
		}
		for x := range c.w {
			if c.class[y][x] != class {
				flush()
				class = c.class[y][x]
			}
			if r := c.cells[y][x]; r != wide {
				run.WriteRune(r)
			}
		}
		flush()
		out[y] = row.String()
	}
	return out
}

// renderElement draws a banner at its presentation frame. It returns nil
// for banners that are fully transparent or too small to draw.
func renderElement(e *present.Element, a theme.Appearance) (lines []string, x, y int) {
	pf := e.PresentationFrame()
	w, h := round(pf.Width), round(pf.Height)
	if w < 2 || h < 2 || e.Alpha() <= 0 {
		return nil, 0, 0
	}
	f := e.Frame()
	sx, sy := ratio(pf.Width, f.Width), ratio(pf.Height, f.Height)

	cv := newCanvas(w, h)
	layout := e.Layout()
	content := e.Content()
	if r := layout.Icon; r != nil {
		cv.put(round(r.X*sx), round(r.Y*sy), iconGlyph(e.Icon()), w-1, classIcon)
	}
	cv.text(content.Title, layout.Title, sx, sy, classTitle)
	cv.text(content.Subtitle, layout.Subtitle, sx, sy, classSubtitle)
	cv.border(lipgloss.RoundedBorder())

	pal := newPalette(a, e.Style().Blur, e.Alpha())
	return cv.lines(pal.styles()), round(pf.X), round(pf.Y)
}

// iconGlyph approximates the stroke animation: nothing before it starts,
// a partial mark while it runs and the full glyph once every stroke is
// drawn.
func iconGlyph(ic icon.Icon) string {
	if ic == nil {
		return ""
	}
	progress, started := 1.0, false
	for _, l := range ic.Layers() {
		progress = min(progress, l.StrokeEnd)
		started = started || l.StrokeEnd > 0
	}
	switch {
	case !started:
		return ""
	case progress >= 1 && ic.Kind() == icon.KindError:
		return "✕"
	case progress >= 1:
		return "✓"
	case ic.Kind() == icon.KindError:
		return "╲"
	default:
		return "·"
	}
}

// palette holds the banner colors after opacity is applied against the
// terminal background.
type palette struct {
	fg, bg, chrome colorful.Color
}

func newPalette(a theme.Appearance, blur theme.BlurStyle, alpha float64) palette {
	screen := terminalBackground(a)
	surfaceRGBA := theme.BackgroundColor(a, blur)
	surface := screen.BlendRgb(rgb(surfaceRGBA), float64(surfaceRGBA.A)/255)
	content := rgb(theme.ContentColor(a))

	fg := screen.BlendRgb(content, alpha)
	bg := screen.BlendRgb(surface, alpha)
	return palette{
		fg:     fg,
		bg:     bg,
		chrome: bg.BlendRgb(fg, 0.6),
	}
}

func (p palette) styles() [numClasses]lipgloss.Style {
	base := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.fg.Hex())).
		Background(lipgloss.Color(p.bg.Hex()))
	var s [numClasses]lipgloss.Style
	s[classChrome] = base.Foreground(lipgloss.Color(p.chrome.Hex()))
	s[classTitle] = base.Bold(true)
	s[classSubtitle] = base
	s[classIcon] = base.Bold(true)
	return s
}

func terminalBackground(a theme.Appearance) colorful.Color {
	if a == theme.Dark {
		return colorful.Color{R: 0.07, G: 0.07, B: 0.08}
	}
	return colorful.Color{R: 1, G: 1, B: 1}
}

func rgb(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// overlay draws layer over base with its top-left cell at (x, y). Lines
// are padded to width first; anything outside the screen is clipped.
func overlay(base []string, width int, layer []string, x, y int) []string {
	for i, l := range layer {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		if x < 0 {
			l = ansi.TruncateLeft(l, -x, "")
		}
		left := max(x, 0)
		if left >= width {
			continue
		}
		l = ansi.Truncate(l, width-left, "")

		line := base[row]
		if pad := width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		base[row] = ansi.Truncate(line, left, "") + l + ansi.TruncateLeft(line, left+ansi.StringWidth(l), "")
	}
	return base
}

func ratio(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	return a / b
}

func round(v float64) int {
	return int(math.Round(v))
}
