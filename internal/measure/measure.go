// Package measure provides the text measurement capability used by banner
// layout: given text, a font and an optional wrap width it reports the
// wrapped bounding size.
package measure

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/alertkit/internal/geom"
)

// Weight is a font weight.
type Weight int

const (
	WeightRegular Weight = iota
	WeightSemibold
)

// Font describes how a label is typeset.
type Font struct {
	Family      string
	Size        float64
	Weight      Weight
	LineSpacing float64 // Extra space between wrapped lines
}

// Measurer measures text. A wrapWidth of zero or less means the text is
// measured at its natural width; explicit line breaks are always honored.
type Measurer interface {
	Measure(text string, font Font, wrapWidth float64) geom.Size
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(text string, font Font, wrapWidth float64) geom.Size

// Measure calls f.
func (f MeasurerFunc) Measure(text string, font Font, wrapWidth float64) geom.Size {
	return f(text, font, wrapWidth)
}

// Monospace approximates a proportional font with a fixed advance per cell.
// It is deterministic and is used for headless layout and tests.
type Monospace struct {
	AdvanceRatio float64 // Cell advance as a fraction of the font size
	LineRatio    float64 // Line height as a fraction of the font size
}

// DefaultMonospace returns a measurer with typical UI font proportions.
func DefaultMonospace() Monospace {
	return Monospace{AdvanceRatio: 0.5, LineRatio: 1.2}
}

// Measure implements Measurer.
func (m Monospace) Measure(text string, font Font, wrapWidth float64) geom.Size {
	if text == "" {
		return geom.Size{}
	}
	advance := font.Size * m.AdvanceRatio
	if advance <= 0 {
		return geom.Size{}
	}

	maxCols := 0
	if wrapWidth > 0 {
		maxCols = int(math.Floor(wrapWidth / advance))
		if maxCols < 1 {
			maxCols = 1
		}
	}

	lines := Wrap(text, maxCols)
	lineHeight := font.Size * m.LineRatio
	height := float64(len(lines))*lineHeight + float64(len(lines)-1)*font.LineSpacing
	return geom.Size{Width: float64(widest(lines)) * advance, Height: height}
}

// Cells measures text in terminal cells: one unit per column and one unit
// per line. Font size and line spacing do not apply to a terminal grid.
type Cells struct{}

// Measure implements Measurer.
func (Cells) Measure(text string, _ Font, wrapWidth float64) geom.Size {
	if text == "" {
		return geom.Size{}
	}
	lines := Wrap(text, int(math.Floor(wrapWidth)))
	return geom.Size{Width: float64(widest(lines)), Height: float64(len(lines))}
}

// Wrap breaks text into lines no wider than maxCols display cells.
// Words are kept whole where possible; a word wider than maxCols is split.
// A maxCols of zero or less only splits on explicit line breaks.
func Wrap(text string, maxCols int) []string {
	paragraphs := strings.Split(text, "\n")
	if maxCols <= 0 {
		return paragraphs
	}

	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		var line strings.Builder
		lineCols := 0
		for _, word := range words {
			for runewidth.StringWidth(word) > maxCols {
				if lineCols > 0 {
					lines = append(lines, line.String())
					line.Reset()
					lineCols = 0
				}
				head := runewidth.Truncate(word, maxCols, "")
				if head == "" {
					// A single rune wider than the line; emit it alone.
					r := []rune(word)
					head = string(r[0])
				}
				lines = append(lines, head)
				word = word[len(head):]
			}
			if word == "" {
				continue
			}

			w := runewidth.StringWidth(word)
			switch {
			case lineCols == 0:
				line.WriteString(word)
				lineCols = w
			case lineCols+1+w <= maxCols:
				line.WriteByte(' ')
				line.WriteString(word)
				lineCols += 1 + w
			default:
				lines = append(lines, line.String())
				line.Reset()
				line.WriteString(word)
				lineCols = w
			}
		}
		if lineCols > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}

func widest(lines []string) int {
	max := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > max {
			max = w
		}
	}
	return max
}
