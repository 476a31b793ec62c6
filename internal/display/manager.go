package display

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// CloseCallback is called after a banner has been torn down.
type CloseCallback func(id uint32, cause present.Cause)

// activeBanner is a banner currently owned by the manager.
type activeBanner struct {
	id   uint32
	ctrl *present.Controller
	// replaced is set when a newer banner took over id; its teardown is
	// not reported.
	replaced bool
}

// Manager shows banners on the configured monitor. It keeps at most one
// banner per variant: showing a new one dismisses the previous banner of
// the same variant. Every method must be called on the GTK main thread.
type Manager struct {
	app    *gtk.Application
	config *config.Config
	haptic present.Haptic
	logger *slog.Logger

	loop     anim.Loop
	measurer measure.Measurer
	style    *StyleLoader
	host     *MonitorHost

	active  map[present.Variant]*activeBanner
	onClose CloseCallback
}

// NewManager creates a new display manager. haptic may be nil.
func NewManager(app *gtk.Application, cfg *config.Config, haptic present.Haptic, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Manager{
		app:    app,
		config: cfg,
		haptic: haptic,
		logger: logger,
		active: make(map[present.Variant]*activeBanner),
	}
}

// Start initializes the display, theme and monitor host.
func (m *Manager) Start() error {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return &DisplayError{Message: "no display available"}
	}

	m.loop = NewLoop()
	m.measurer = NewPangoMeasurer()

	m.style = NewStyleLoader(m.logger)
	m.style.Load(m.config.Theme.Name, m.overrideCSS())
	m.style.Apply(display)

	monitor := selectMonitor(display, m.config.Display.Monitor, m.logger)
	host, err := NewMonitorHost(m.app, monitor, m.insets(), m.logger)
	if err != nil {
		return &DisplayError{Message: "failed to create host", Cause: err}
	}
	m.host = host

	m.logger.Info("display manager started", "bounds", host.Bounds())
	return nil
}

// Stop dismisses every banner and tears down their windows immediately.
func (m *Manager) Stop() {
	m.CloseAll()
	if m.host != nil {
		m.host.closeAll()
	}
	m.logger.Info("display manager stopped")
}

// SetCloseCallback sets the callback for banner teardown.
func (m *Manager) SetCloseCallback(cb CloseCallback) {
	m.onClose = cb
}

// SetHaptic replaces the impact used by bars presented afterwards.
func (m *Manager) SetHaptic(h present.Haptic) {
	m.haptic = h
}

// Show builds and presents the banner for req under id.
func (m *Manager) Show(id uint32, req present.Request) error {
	if m.host == nil {
		return &DisplayError{Message: "display manager not started"}
	}

	for variant, prev := range m.active {
		if prev.id == id {
			prev.replaced = true
		}
		if variant == req.Variant || prev.replaced {
			m.logger.Debug("replacing banner", "previous", prev.id, "id", id, "variant", req.Variant)
			prev.ctrl.Dismiss()
		}
	}

	appearance := m.appearance()
	m.host.appearance = appearance

	ctrl := req.Build(m.config.BarPresentation(m.haptic), m.config.TitlePresentation(), present.Options{
		Loop:     m.loop,
		Measurer: m.measurer,
		Tint:     theme.ContentColor(appearance),
		Logger:   m.logger,
	})

	entry := &activeBanner{id: id, ctrl: ctrl}
	if err := ctrl.Present(m.host, func(cause present.Cause) {
		m.handleClosed(entry, req.Variant, cause)
	}); err != nil {
		return &DisplayError{Message: fmt.Sprintf("failed to present banner %d", id), Cause: err}
	}
	m.active[req.Variant] = entry

	m.logger.Debug("showing banner",
		"id", id,
		"variant", req.Variant,
		"title", req.Content.Title,
		"icon", req.Content.Icon,
	)
	return nil
}

// Close dismisses the banner shown under id. It reports whether one was
// found.
func (m *Manager) Close(id uint32) bool {
	for _, entry := range m.active {
		if entry.id == id && !entry.replaced {
			entry.ctrl.Dismiss()
			return true
		}
	}
	return false
}

// CloseAll dismisses every banner.
func (m *Manager) CloseAll() {
	for _, entry := range m.active {
		entry.ctrl.Dismiss()
	}
}

// ActiveCount returns the number of banners not yet torn down.
func (m *Manager) ActiveCount() int {
	return len(m.active)
}

// UpdateConfig applies a reloaded configuration. Banners already on screen
// keep the configuration they were built with.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	old := m.config
	m.config = cfg

	if m.style != nil {
		if old.Theme.Name != cfg.Theme.Name {
			m.style.Load(cfg.Theme.Name, m.overrideCSS())
		} else {
			m.style.Reload(m.overrideCSS())
		}
	}
	if m.host != nil {
		m.host.SetInsets(m.insets())
	}

	m.logger.Debug("display manager config updated",
		"theme", cfg.Theme.Name,
		"color_scheme", cfg.Theme.ColorScheme,
	)
}

func (m *Manager) handleClosed(entry *activeBanner, variant present.Variant, cause present.Cause) {
	if m.active[variant] == entry {
		delete(m.active, variant)
	}
	m.logger.Debug("banner closed", "id", entry.id, "cause", cause, "replaced", entry.replaced)
	if m.onClose != nil && !entry.replaced {
		m.onClose(entry.id, cause)
	}
}

func (m *Manager) appearance() theme.Appearance {
	return theme.ResolveAppearance(m.config.Scheme(), adw.StyleManagerGetDefault().Dark())
}

func (m *Manager) insets() geom.Insets {
	return geom.Insets{Top: m.config.Display.TopInset, Bottom: m.config.Display.BottomInset}
}

func (m *Manager) overrideCSS() string {
	return theme.OverrideCSS(m.config.Bar.CornerRadius, banner.DefaultTitleMetrics().CornerRadius)
}

// DisplayError represents a display-related error.
type DisplayError struct {
	Message string
	Cause   error
}

func (e *DisplayError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *DisplayError) Unwrap() error {
	return e.Cause
}
