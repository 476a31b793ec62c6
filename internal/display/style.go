package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/alertkit/internal/theme"
)

// StyleLoader loads a CSS theme plus configuration overrides into a
// provider attached to the display.
type StyleLoader struct {
	logger    *slog.Logger
	provider  *gtk.CSSProvider
	themesDir string
	theme     *theme.Theme
	overrides string
	applied   bool
}

// NewStyleLoader creates a loader reading user themes from the default
// themes directory.
func NewStyleLoader(logger *slog.Logger) *StyleLoader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := theme.ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &StyleLoader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// Load resolves a theme by name and replaces the provider contents. User
// themes override bundled ones; an unknown name falls back to the default.
func (l *StyleLoader) Load(name, overrides string) {
	t, err := theme.Resolve(name, l.themesDir)
	if err != nil {
		l.logger.Warn("theme not found, using default", "theme", name, "error", err)
	}
	l.theme = t
	l.overrides = overrides
	l.provider.LoadFromString(t.CSS + "\n" + overrides)
	l.logger.Info("loaded theme", "name", t.Name, "bundled", t.Bundled, "path", t.Path)
}

// Reload re-reads the current user theme from disk and swaps in new
// overrides. The provider is only reloaded when something changed.
func (l *StyleLoader) Reload(overrides string) {
	if l.theme == nil {
		return
	}
	changed, err := l.theme.Reload()
	if err != nil {
		l.logger.Warn("failed to reload theme", "theme", l.theme.Name, "error", err)
	}
	if changed || overrides != l.overrides {
		l.overrides = overrides
		l.provider.LoadFromString(l.theme.CSS + "\n" + l.overrides)
		l.logger.Info("reloaded theme", "name", l.theme.Name)
	}
}

// Apply attaches the provider to a display. A nil display means the
// default display.
func (l *StyleLoader) Apply(display *gdk.Display) {
	if l.applied {
		return
	}
	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.applied = true
}

// Theme returns the loaded theme.
func (l *StyleLoader) Theme() *theme.Theme {
	return l.theme
}
