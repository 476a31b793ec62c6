package present

import (
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
)

// TitleBar is the compact title-only banner. Its height is fixed and it
// sits near the top of its host.
type TitleBar struct {
	*Controller
	engine    *banner.TitleEngine
	title     string
	yPosition *float64
}

// NewTitleBar creates a title-only banner.
func NewTitleBar(title string, cfg TitleConfig, opts Options) *TitleBar {
	opts = opts.withDefaults()
	metrics := banner.DefaultTitleMetrics()
	if opts.Metrics != nil {
		metrics = *opts.Metrics
	}

	t := &TitleBar{
		engine: banner.NewTitleEngine(metrics, opts.Measurer, cfg.Height),
		title:  title,
	}
	if cfg.YPosition != nil {
		y := *cfg.YPosition
		t.yPosition = &y
	}

	elem := newElement(VariantTitle, banner.Content{Title: title, Icon: icon.KindNone}, Style{
		CornerRadius: metrics.CornerRadius,
		Blur:         cfg.Blur,
		Tint:         opts.Tint,
	}, nil)
	t.Controller = newController(cfg.Config, t, elem, opts)
	return t
}

func (t *TitleBar) sizeThatFits(float64) banner.Result {
	return t.engine.SizeThatFits(t.title)
}

func (t *TitleBar) relayout(bounds geom.Size) banner.Result {
	return t.engine.Layout(t.title, bounds.Width)
}

func (t *TitleBar) origin(host geom.Rect, insets geom.Insets, size geom.Size) geom.Point {
	y := insets.Top + size.Height
	if t.yPosition != nil {
		y = *t.yPosition
	}
	return geom.Point{X: host.MidX() - size.Width/2, Y: y}
}

func (t *TitleBar) recenter() bool { return true }
