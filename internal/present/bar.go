package present

import (
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
)

// Bar is the title and subtitle banner with an optional status icon. It
// sits near the bottom of its host.
type Bar struct {
	*Controller
	engine  *banner.Engine
	content banner.Content
}

// NewBar creates a bar banner for content.
func NewBar(content banner.Content, cfg BarConfig, opts Options) *Bar {
	opts = opts.withDefaults()
	metrics := banner.DefaultBarMetrics()
	if opts.Metrics != nil {
		metrics = *opts.Metrics
	}
	metrics.CornerRadius = cfg.CornerRadius

	b := &Bar{
		engine:  banner.NewEngine(metrics, opts.Measurer),
		content: content,
	}
	ic := icon.New(content.Icon, metrics.IconLineThick, opts.Loop)
	elem := newElement(VariantBar, content, Style{
		CornerRadius: cfg.CornerRadius,
		Blur:         cfg.Blur,
		Tint:         opts.Tint,
	}, ic)
	b.Controller = newController(cfg.Config, b, elem, opts)
	return b
}

func (b *Bar) sizeThatFits(hostWidth float64) banner.Result {
	return b.engine.SizeThatFits(b.content, hostWidth)
}

func (b *Bar) relayout(bounds geom.Size) banner.Result {
	return b.engine.Relayout(b.content, bounds)
}

func (b *Bar) origin(host geom.Rect, insets geom.Insets, size geom.Size) geom.Point {
	return geom.Point{
		X: host.MidX() - size.Width/2,
		Y: host.Height - insets.Bottom - size.Height - b.engine.Metrics.BottomOffset,
	}
}

func (b *Bar) recenter() bool { return false }
