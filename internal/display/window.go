package display

import (
	"image/color"
	"math"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// bannerWindow is the layer-shell surface of one attached banner. It
// mirrors the element's frame, internal layout and opacity.
type bannerWindow struct {
	elem   *present.Element
	window *gtk.Window
	fixed  *gtk.Fixed

	title    *gtk.Label
	subtitle *gtk.Label
	icon     *gtk.DrawingArea

	unobserve func()
	frame     [4]int
	closed    bool
}

func newBannerWindow(app *gtk.Application, monitor *gdk.Monitor, elem *present.Element, metrics banner.Metrics, appearance theme.Appearance) *bannerWindow {
	w := &bannerWindow{elem: elem, frame: [4]int{-1, -1, -1, -1}}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.AddCSSClass("alert-window")

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "alertkit-banner")
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, true)
	if monitor != nil {
		layershell.SetMonitor(w.window, monitor)
	}

	w.buildUI(metrics, appearance)
	w.connectSignals()
	w.sync()
	w.unobserve = elem.Observe(func(*present.Element) { w.sync() })
	return w
}

func (w *bannerWindow) buildUI(metrics banner.Metrics, appearance theme.Appearance) {
	box := gtk.NewBox(gtk.OrientationVertical, 0)
	box.AddCSSClass("alert-banner")
	if w.elem.Variant() == present.VariantTitle {
		box.AddCSSClass("alert-title-only")
	}
	box.AddCSSClass(appearance.String())
	box.AddCSSClass(w.elem.Style().Blur.CSSClass())

	w.fixed = gtk.NewFixed()
	box.Append(w.fixed)

	content := w.elem.Content()
	if content.HasTitle() {
		w.title = newBannerLabel(content.Title, "alert-title", metrics.TitleFont)
		w.fixed.Put(w.title, 0, 0)
	}
	if content.HasSubtitle() && w.elem.Variant() == present.VariantBar {
		w.subtitle = newBannerLabel(content.Subtitle, "alert-subtitle", metrics.SubtitleFont)
		w.fixed.Put(w.subtitle, 0, 0)
	}
	if ic := w.elem.Icon(); ic != nil {
		w.icon = gtk.NewDrawingArea()
		w.icon.AddCSSClass("alert-icon")
		w.icon.SetDrawFunc(func(_ *gtk.DrawingArea, cr *cairo.Context, _, _ int) {
			drawStrokes(cr, ic.Layers())
		})
		w.fixed.Put(w.icon, 0, 0)
	}

	w.window.SetChild(box)
}

func newBannerLabel(text, class string, font measure.Font) *gtk.Label {
	label := gtk.NewLabel(text)
	label.AddCSSClass(class)
	label.SetXAlign(0)
	label.SetYAlign(0)
	label.SetWrap(true)
	label.SetAttributes(fontAttributes(font))
	return label
}

// connectSignals routes clicks anywhere on the banner to a tap.
func (w *bannerWindow) connectSignals() {
	click := gtk.NewGestureClick()
	click.SetButton(0)
	click.ConnectReleased(func(nPress int, x, y float64) {
		w.elem.Tap()
	})
	w.window.AddController(click)
}

// sync copies the element state onto the window. Scale transforms cannot
// be expressed on a layer surface, so only the opacity animates.
func (w *bannerWindow) sync() {
	if w.closed {
		return
	}
	w.window.SetOpacity(w.elem.Alpha())

	frame := w.elem.Frame()
	next := [4]int{round(frame.X), round(frame.Y), round(frame.Width), round(frame.Height)}
	if next != w.frame {
		w.frame = next
		layershell.SetMargin(w.window, layershell.LayerShellEdgeLeft, next[0])
		layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, next[1])
		w.window.SetDefaultSize(next[2], next[3])
		w.window.SetSizeRequest(next[2], next[3])
	}

	layout := w.elem.Layout()
	if w.title != nil {
		place(w.fixed, w.title, layout.Title)
	}
	if w.subtitle != nil {
		place(w.fixed, w.subtitle, layout.Subtitle)
	}
	if w.icon != nil {
		place(w.fixed, w.icon, layout.Icon)
		w.icon.QueueDraw()
	}
}

func (w *bannerWindow) show() {
	w.window.Present()
}

// close is idempotent.
func (w *bannerWindow) close() {
	if w.closed {
		return
	}
	w.closed = true
	if w.unobserve != nil {
		w.unobserve()
	}
	w.window.Close()
}

type sizedWidget interface {
	gtk.Widgetter
	SetSizeRequest(width, height int)
	SetVisible(visible bool)
}

func place(fixed *gtk.Fixed, widget sizedWidget, r *geom.Rect) {
	if r == nil {
		widget.SetVisible(false)
		return
	}
	widget.SetVisible(true)
	fixed.Move(widget, r.X, r.Y)
	widget.SetSizeRequest(round(r.Width), round(r.Height))
}

// drawStrokes renders icon stroke layers in icon-local coordinates.
func drawStrokes(cr *cairo.Context, layers []icon.StrokeLayer) {
	for _, layer := range layers {
		points := layer.Visible()
		if len(points) < 2 {
			continue
		}
		r, g, b, a := rgba(layer.Color)
		cr.SetSourceRGBA(r, g, b, a)
		cr.SetLineWidth(layer.LineWidth)
		cr.SetLineCap(lineCap(layer.Cap))
		cr.SetLineJoin(lineJoin(layer.Join))
		cr.MoveTo(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			cr.LineTo(p.X, p.Y)
		}
		cr.Stroke()
	}
}

func lineCap(c icon.LineCap) cairo.LineCap {
	if c == icon.CapRound {
		return cairo.LineCapRound
	}
	return cairo.LineCapButt
}

func lineJoin(j icon.LineJoin) cairo.LineJoin {
	if j == icon.JoinRound {
		return cairo.LineJoinRound
	}
	return cairo.LineJoinMiter
}

func rgba(c color.Color) (r, g, b, a float64) {
	if c == nil {
		return 0, 0, 0, 1
	}
	cr, cg, cb, ca := c.RGBA()
	if ca == 0 {
		return 0, 0, 0, 0
	}
	// Colors are premultiplied; cairo wants straight alpha.
	return float64(cr) / float64(ca), float64(cg) / float64(ca), float64(cb) / float64(ca), float64(ca) / 0xffff
}

func round(v float64) int {
	return int(math.Round(v))
}
