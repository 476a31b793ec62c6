package display

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// MonitorHost is a present.Host backed by one monitor. Its bounds are the
// monitor geometry in monitor-local coordinates.
type MonitorHost struct {
	app     *gtk.Application
	monitor *gdk.Monitor
	insets  geom.Insets
	logger  *slog.Logger

	// Set by the manager before each present.
	appearance theme.Appearance
	metrics    map[present.Variant]banner.Metrics

	windows map[ulid.ULID]*bannerWindow
	valid   bool
}

// NewMonitorHost creates a host on monitor. insets reserve space at the
// top and bottom edges, such as panels or docks.
func NewMonitorHost(app *gtk.Application, monitor *gdk.Monitor, insets geom.Insets, logger *slog.Logger) (*MonitorHost, error) {
	if monitor == nil {
		return nil, &DisplayError{Message: "no monitor available"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &MonitorHost{
		app:     app,
		monitor: monitor,
		insets:  insets,
		logger:  logger,
		metrics: map[present.Variant]banner.Metrics{
			present.VariantBar:   banner.DefaultBarMetrics(),
			present.VariantTitle: banner.DefaultTitleMetrics(),
		},
		windows: make(map[ulid.ULID]*bannerWindow),
		valid:   true,
	}

	monitor.ConnectInvalidate(func() {
		h.logger.Info("monitor disconnected", "windows", len(h.windows))
		h.valid = false
		h.closeAll()
	})
	monitor.NotifyProperty("geometry", func() {
		h.logger.Debug("monitor geometry changed", "bounds", h.Bounds())
		for _, w := range h.windows {
			w.elem.Resize(w.elem.Frame().Size())
		}
	})
	return h, nil
}

// AttachChild implements present.Host.
func (h *MonitorHost) AttachChild(e *present.Element) {
	if !h.Alive() {
		return
	}
	w := newBannerWindow(h.app, h.monitor, e, h.metrics[e.Variant()], h.appearance)
	h.windows[e.ID()] = w
	w.show()
	h.logger.Debug("banner window attached", "banner", e.ID().String())
}

// DetachChild implements present.Host.
func (h *MonitorHost) DetachChild(e *present.Element) {
	w, ok := h.windows[e.ID()]
	if !ok {
		return
	}
	delete(h.windows, e.ID())
	w.close()
	h.logger.Debug("banner window detached", "banner", e.ID().String())
}

// Bounds implements present.Host.
func (h *MonitorHost) Bounds() geom.Rect {
	g := h.monitor.Geometry()
	return geom.Rect{Width: float64(g.Width()), Height: float64(g.Height())}
}

// SafeInsets implements present.Host.
func (h *MonitorHost) SafeInsets() geom.Insets {
	return h.insets
}

// Alive implements present.LivenessChecker. A host whose monitor was
// unplugged is never touched again.
func (h *MonitorHost) Alive() bool {
	return h.valid && h.monitor.IsValid()
}

// SetInsets changes the reserved edges for banners presented afterwards.
func (h *MonitorHost) SetInsets(insets geom.Insets) {
	h.insets = insets
}

// Windows returns the number of attached banner windows.
func (h *MonitorHost) Windows() int {
	return len(h.windows)
}

func (h *MonitorHost) closeAll() {
	for id, w := range h.windows {
		w.close()
		delete(h.windows, id)
	}
}
