package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/present"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestNew_RequiresLoop(t *testing.T) {
	assert.Panics(t, func() { New(Options{}) })
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := New(Options{Loop: anim.NewManualLoop()})
	assert.Equal(t, "Initializing...", m.View())
}

func TestModel_TitleKey(t *testing.T) {
	m, loop := newTestModel(t, 80, 24)
	m = press(m, runes("t"))
	require.Equal(t, 1, m.ActiveBanners())

	loop.Advance(500 * time.Millisecond)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Copied to clipboard")
	assert.Len(t, strings.Split(view, "\n"), 24)
	assert.Contains(t, m.state.events[0], `#1 title "Copied to clipboard"`)
}

func TestModel_BarKeys(t *testing.T) {
	tests := []struct {
		key   string
		title string
	}{
		{"s", "Saved"},
		{"e", "Upload failed"},
		{"i", "Heads up"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, loop := newTestModel(t, 80, 24)
			m = press(m, runes(tt.key))
			loop.Advance(200 * time.Millisecond)

			ctrl := m.state.banners[present.VariantBar]
			require.NotNil(t, ctrl)
			assert.Equal(t, present.StateVisible, ctrl.State())
			assert.Contains(t, ansi.Strip(m.View()), tt.title)
		})
	}
}

func TestModel_SameVariantReplaces(t *testing.T) {
	m, loop := newTestModel(t, 80, 24)
	m = press(m, runes("s"))
	loop.Advance(200 * time.Millisecond)
	first := m.state.banners[present.VariantBar]

	m = press(m, runes("e"))
	assert.Equal(t, present.StateDismissing, first.State())
	assert.NotSame(t, first, m.state.banners[present.VariantBar])

	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, present.CauseExternal, first.Cause())
	assert.Equal(t, 1, m.ActiveBanners())
}

func TestModel_BothVariantsCoexist(t *testing.T) {
	m, loop := newTestModel(t, 80, 24)
	m = press(m, runes("s"))
	m = press(m, runes("t"))
	loop.Advance(500 * time.Millisecond)
	assert.Equal(t, 2, m.ActiveBanners())

	m = press(m, runes("x"))
	loop.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, m.ActiveBanners())
	assert.Empty(t, m.state.banners)
}

func TestModel_MouseTapDismisses(t *testing.T) {
	m, loop := newTestModel(t, 80, 24)
	m = press(m, runes("t"))
	loop.Advance(500 * time.Millisecond)

	m = press(m, tea.MouseMsg{X: 40, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	loop.Advance(500 * time.Millisecond)

	assert.Equal(t, 0, m.ActiveBanners())
	events := strings.Join(m.state.events, "\n")
	assert.Contains(t, events, "tap at 40,4")
	assert.Contains(t, events, "#1 dismissed (tap)")
}

func TestModel_TimerDismisses(t *testing.T) {
	m, loop := newTestModel(t, 80, 24)
	m = press(m, runes("s"))
	loop.Advance(200*time.Millisecond + 1500*time.Millisecond + 200*time.Millisecond)

	assert.Equal(t, 0, m.ActiveBanners())
	assert.Contains(t, strings.Join(m.state.events, "\n"), "#1 dismissed (timer)")
}

func TestModel_DispatchRunsCallback(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	ran := false
	m = press(m, dispatchMsg{fn: func() { ran = true }})
	assert.True(t, ran)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newTestModel(t, 80, 24)
	short := m.View()
	m = press(m, runes("?"))
	assert.NotEqual(t, short, m.View())
	assert.True(t, m.showHelp)
}
