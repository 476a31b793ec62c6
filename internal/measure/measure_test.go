package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/alertkit/internal/geom"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		maxCols int
		want    []string
	}{
		{"no wrap", "hello world", 0, []string{"hello world"}},
		{"fits", "hello world", 11, []string{"hello world"}},
		{"breaks on space", "hello world", 8, []string{"hello", "world"}},
		{"explicit newline", "a\nb", 0, []string{"a", "b"}},
		{"long word split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"blank paragraph kept", "a\n\nb", 10, []string{"a", "", "b"}},
		{"wide runes", "日本語テキスト", 6, []string{"日本語", "テキス", "ト"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.text, tt.maxCols))
		})
	}
}

func TestMonospace_Measure(t *testing.T) {
	m := Monospace{AdvanceRatio: 0.5, LineRatio: 1}
	font := Font{Size: 10, LineSpacing: 2}

	assert.Equal(t, geom.Size{}, m.Measure("", font, 0))
	assert.Equal(t, geom.Size{Width: 25, Height: 10}, m.Measure("Saved", font, 0))

	// 5 cells per line at wrap width 25: "hello" / "world"
	assert.Equal(t, geom.Size{Width: 25, Height: 22}, m.Measure("hello world", font, 25))
}

func TestMonospace_NarrowWrapStillMeasures(t *testing.T) {
	m := Monospace{AdvanceRatio: 0.5, LineRatio: 1}
	size := m.Measure("abc", Font{Size: 10}, 1)
	assert.Equal(t, 5.0, size.Width)
	assert.Equal(t, 30.0, size.Height)
}

func TestCells_Measure(t *testing.T) {
	var c Cells
	assert.Equal(t, geom.Size{Width: 5, Height: 1}, c.Measure("Saved", Font{Size: 99, LineSpacing: 3}, 0))
	assert.Equal(t, geom.Size{Width: 5, Height: 2}, c.Measure("hello world", Font{}, 6))
}
