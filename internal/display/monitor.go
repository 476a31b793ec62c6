package display

import (
	"log/slog"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
)

// selectMonitor returns the monitor banners are shown on.
// Config values:
// - 0: First monitor
// - 1+: Specific monitor (1-indexed)
//
// An unavailable monitor falls back to the first one. Returns nil when the
// display has no monitors.
func selectMonitor(display *gdk.Display, n int, logger *slog.Logger) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		logger.Warn("no monitors available")
		return nil
	}

	index := uint(0)
	if n > 0 {
		index = uint(n - 1)
	}
	if index >= monitors.NItems() {
		logger.Warn("configured monitor not available, using first",
			"configured", n,
			"available", monitors.NItems(),
		)
		index = 0
	}
	return wrapMonitor(monitors.Item(index))
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 doesn't export its own wrapper, so this mirrors its layout: the
// gdk.Monitor struct embeds a *glib.Object.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
