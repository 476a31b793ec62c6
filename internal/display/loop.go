package display

import (
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/alertkit/internal/anim"
)

// NewLoop returns a loop whose callbacks run on the GLib main context.
// Banners driven by it may touch GTK objects from their callbacks.
func NewLoop() *anim.DispatchLoop {
	return anim.NewDispatchLoop(func(fn func()) {
		glib.IdleAdd(fn)
	})
}
