package present

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/measure"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Haptic triggers a short physical or audible impact.
type Haptic interface {
	Impact()
}

// HapticFunc adapts a function to the Haptic interface.
type HapticFunc func()

// Impact calls f.
func (f HapticFunc) Impact() { f() }

// Config controls how a banner is presented and dismissed.
type Config struct {
	DismissByTap      bool
	DismissInTime     bool
	Duration          time.Duration // Time spent visible before auto-dismiss
	EnterExitDuration time.Duration
	EnterExitScale    float64
	Haptic            Haptic // Optional
}

// BarConfig is the construction surface of the title and subtitle banner.
type BarConfig struct {
	Config
	CornerRadius float64
	Blur         theme.BlurStyle
}

// DefaultBarConfig returns the default bar configuration.
func DefaultBarConfig() BarConfig {
	return BarConfig{
		Config: Config{
			DismissByTap:      true,
			DismissInTime:     true,
			Duration:          1500 * time.Millisecond,
			EnterExitDuration: 200 * time.Millisecond,
			EnterExitScale:    0.8,
		},
		CornerRadius: 14,
		Blur:         theme.DefaultBlurStyle,
	}
}

// TitleConfig is the construction surface of the title-only banner.
type TitleConfig struct {
	Config
	Height float64
	// YPosition, when set, pins the top of the banner regardless of the
	// host's safe insets.
	YPosition *float64
	Blur      theme.BlurStyle
}

// DefaultTitleConfig returns the default title-only configuration.
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		Config: Config{
			DismissByTap:      true,
			DismissInTime:     true,
			Duration:          1500 * time.Millisecond,
			EnterExitDuration: 500 * time.Millisecond,
			EnterExitScale:    0.8,
		},
		Height: 42,
		Blur:   theme.DefaultBlurStyle,
	}
}

// Options carry the collaborators a banner is built with.
type Options struct {
	Loop     anim.Loop
	Measurer measure.Measurer // Defaults to measure.DefaultMonospace
	Metrics  *banner.Metrics  // Defaults to the variant's default metrics
	Tint     color.Color      // Defaults to the light content color
	Logger   *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Measurer == nil {
		o.Measurer = measure.DefaultMonospace()
	}
	if o.Tint == nil {
		o.Tint = theme.ContentColor(theme.Light)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
