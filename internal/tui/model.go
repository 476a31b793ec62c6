// Package tui provides a BubbleTea terminal backend for banners: a screen
// host measured in cells, a renderer that composites banners over the
// terminal content and an interactive demo.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// dispatchMsg carries a loop callback onto the Update goroutine.
type dispatchMsg struct {
	fn func()
}

// demoState is shared between copies of Model.
type demoState struct {
	banners map[present.Variant]*present.Controller
	events  []string
	nextID  int
}

// Model is the demo TUI model.
type Model struct {
	// Configuration
	cfg        *config.Config
	loop       anim.Loop
	haptic     present.Haptic
	appearance theme.Appearance
	logger     *slog.Logger

	// Components
	screen   *Screen
	log      viewport.Model
	help     help.Model
	keys     KeyMap
	showHelp bool

	state  *demoState
	width  int
	height int
	ready  bool
}

// Options configures the demo model.
type Options struct {
	Config     *config.Config   // Defaults to config.DefaultConfig
	Loop       anim.Loop        // Required
	Haptic     present.Haptic   // Optional
	Appearance theme.Appearance // Light or Dark
	Logger     *slog.Logger
}

// New creates a new demo model.
func New(opts Options) Model {
	if opts.Loop == nil {
		panic("tui: Options.Loop is required")
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return Model{
		cfg:        opts.Config,
		loop:       opts.Loop,
		haptic:     opts.Haptic,
		appearance: opts.Appearance,
		logger:     opts.Logger,
		screen:     NewScreen(0, 0),
		help:       help.New(),
		keys:       DefaultKeyMap(),
		state: &demoState{
			banners: make(map[present.Variant]*present.Controller),
		},
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		m.refreshLog()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.screen.Tap(msg.X, msg.Y) {
				m.logEvent("tap at %d,%d", msg.X, msg.Y)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		m.screen.SetSize(msg.Width, msg.Height)
		m.log = viewport.New(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		m.refreshLog()
		return m, nil
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Success):
		m.show(present.Request{Content: banner.Content{
			Title:    "Saved",
			Subtitle: "Your changes are stored on disk",
			Icon:     icon.KindDone,
		}})
	case key.Matches(msg, m.keys.Error):
		m.show(present.Request{Content: banner.Content{
			Title:    "Upload failed",
			Subtitle: "Check your connection and try again",
			Icon:     icon.KindError,
		}})
	case key.Matches(msg, m.keys.Info):
		m.show(present.Request{Content: banner.Content{
			Title:    "Heads up",
			Subtitle: "Long subtitles wrap so the banner never grows wider than its cap",
		}})
	case key.Matches(msg, m.keys.Title):
		m.show(present.Request{Variant: present.VariantTitle, Content: banner.Content{
			Title: "Copied to clipboard",
		}})
	case key.Matches(msg, m.keys.DismissAll):
		for _, c := range m.state.banners {
			c.Dismiss()
		}
	}
	return m, nil
}

// show replaces the banner of the request's variant.
func (m Model) show(req present.Request) {
	if prev, ok := m.state.banners[req.Variant]; ok {
		prev.Dismiss()
	}

	metrics := BarMetrics()
	if req.Variant == present.VariantTitle {
		metrics = TitleMetrics()
	}

	ctrl := req.Build(m.cfg.BarPresentation(m.haptic), cellTitleConfig(m.cfg), present.Options{
		Loop:     m.loop,
		Measurer: measure.Cells{},
		Metrics:  &metrics,
		Tint:     theme.ContentColor(m.appearance),
		Logger:   m.logger,
	})

	m.state.nextID++
	id := m.state.nextID
	err := ctrl.Present(m.screen, func(cause present.Cause) {
		if m.state.banners[req.Variant] == ctrl {
			delete(m.state.banners, req.Variant)
		}
		m.logEvent("#%d dismissed (%s)", id, cause)
	})
	if err != nil {
		m.logEvent("#%d failed: %v", id, err)
		return
	}
	m.state.banners[req.Variant] = ctrl
	m.logEvent("#%d %s %q", id, req.Variant, req.Content.Title)
}

// cellTitleConfig adapts the configured title banner to a cell grid. The
// configured height and pinned position are in pixels.
func cellTitleConfig(cfg *config.Config) present.TitleConfig {
	title := cfg.TitlePresentation()
	title.Height = TitleHeight
	title.YPosition = nil
	return title
}

func (m Model) logEvent(format string, args ...any) {
	line := time.Now().Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	m.state.events = append(m.state.events, line)
}

func (m *Model) refreshLog() {
	if !m.ready {
		return
	}
	header := lipgloss.NewStyle().Bold(true).Render("alertkit banner demo")
	m.log.SetContent(header + "\n\n" + strings.Join(m.state.events, "\n"))
	m.log.GotoBottom()
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	m.refreshLog()
	base := strings.Split(m.log.View(), "\n")
	lines := m.screen.Render(base, m.appearance)

	footer := m.help.ShortHelpView(m.keys.ShortHelp())
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
		n := strings.Count(footer, "\n") + 1
		lines = lines[:max(len(lines)-n+1, 0)]
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n" + footer
}

// ActiveBanners returns the number of banners on screen.
func (m Model) ActiveBanners() int {
	return len(m.screen.Children())
}

// RunOptions configures the demo.
type RunOptions struct {
	Config     *config.Config
	Haptic     present.Haptic
	Appearance theme.Appearance
	Logger     *slog.Logger
}

// Run starts the demo and blocks until it exits.
func Run(opts RunOptions) error {
	_, err := newProgram(opts, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// newProgram wires the demo model to a program whose update loop drives
// every banner timer.
func newProgram(opts RunOptions, programOpts ...tea.ProgramOption) *tea.Program {
	var p *tea.Program
	loop := anim.NewDispatchLoop(func(fn func()) {
		p.Send(dispatchMsg{fn: fn})
	})

	m := New(Options{
		Config:     opts.Config,
		Loop:       loop,
		Haptic:     opts.Haptic,
		Appearance: opts.Appearance,
		Logger:     opts.Logger,
	})
	p = tea.NewProgram(m, programOpts...)
	return p
}
