package output

import (
	"errors"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/config"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/present"
)

// Report describes where a banner settles once it has entered.
type Report struct {
	Variant       string `json:"variant" yaml:"variant"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle      string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Icon          string `json:"icon" yaml:"icon"`
	Host          Box    `json:"host" yaml:"host"`
	Frame         Box    `json:"frame" yaml:"frame"`
	TitleFrame    *Box   `json:"title_frame,omitempty" yaml:"title_frame,omitempty"`
	SubtitleFrame *Box   `json:"subtitle_frame,omitempty" yaml:"subtitle_frame,omitempty"`
	IconFrame     *Box   `json:"icon_frame,omitempty" yaml:"icon_frame,omitempty"`
	Timing        Timing `json:"timing" yaml:"timing"`
}

// Box is a rectangle in host coordinates.
type Box struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Timing is the effective presentation timing of a banner.
type Timing struct {
	Enter   config.Duration `json:"enter" yaml:"enter"`
	Visible config.Duration `json:"visible" yaml:"visible"`
	Exit    config.Duration `json:"exit" yaml:"exit"`
	Sticky  bool            `json:"sticky,omitempty" yaml:"sticky,omitempty"`
}

// PreviewOptions describes the virtual host a banner is laid out on.
type PreviewOptions struct {
	Config   *config.Config   // Defaults to config.DefaultConfig
	Host     geom.Size        // Host bounds
	Insets   geom.Insets      // Host safe insets
	Measurer measure.Measurer // Defaults to measure.DefaultMonospace
}

// ErrEmptyHost is returned when the preview host has no area.
var ErrEmptyHost = errors.New("preview host has no area")

// Preview presents req on a virtual host, runs the enter animation to its
// end and reports the resulting layout. Nothing is drawn.
func Preview(req present.Request, opts PreviewOptions) (Report, error) {
	if opts.Host.Width <= 0 || opts.Host.Height <= 0 {
		return Report{}, ErrEmptyHost
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Measurer == nil {
		opts.Measurer = measure.DefaultMonospace()
	}

	loop := anim.NewManualLoop()
	ctrl := req.Build(opts.Config.BarPresentation(nil), opts.Config.TitlePresentation(), present.Options{
		Loop:     loop,
		Measurer: opts.Measurer,
	})

	host := &virtualHost{bounds: geom.Rect{Width: opts.Host.Width, Height: opts.Host.Height}, insets: opts.Insets}
	if err := ctrl.Present(host, nil); err != nil {
		return Report{}, err
	}
	cfg := ctrl.Config()
	loop.Advance(cfg.EnterExitDuration)

	elem := ctrl.Element()
	content := elem.Content()
	layout := elem.Layout()
	return Report{
		Variant:       elem.Variant().String(),
		Title:         content.Title,
		Subtitle:      content.Subtitle,
		Icon:          content.Icon.String(),
		Host:          boxOf(host.bounds),
		Frame:         boxOf(elem.Frame()),
		TitleFrame:    boxPtr(layout.Title),
		SubtitleFrame: boxPtr(layout.Subtitle),
		IconFrame:     boxPtr(layout.Icon),
		Timing: Timing{
			Enter:   config.Duration(cfg.EnterExitDuration),
			Visible: config.Duration(cfg.Duration),
			Exit:    config.Duration(cfg.EnterExitDuration),
			Sticky:  !cfg.DismissInTime,
		},
	}, nil
}

// virtualHost is a present.Host with fixed bounds and no surface.
type virtualHost struct {
	bounds geom.Rect
	insets geom.Insets
}

func (h *virtualHost) AttachChild(*present.Element) {}
func (h *virtualHost) DetachChild(*present.Element) {}
func (h *virtualHost) Bounds() geom.Rect            { return h.bounds }
func (h *virtualHost) SafeInsets() geom.Insets      { return h.insets }

func boxOf(r geom.Rect) Box {
	return Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// boxPtr converts a layout frame, which is relative to the banner.
func boxPtr(r *geom.Rect) *Box {
	if r == nil {
		return nil
	}
	b := boxOf(*r)
	return &b
}
