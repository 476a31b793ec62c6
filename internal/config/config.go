// Package config loads, validates and watches the alertkit configuration
// file. Every banner construction default can be overridden here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

// Config is the alertkit configuration.
// Loaded from ~/.config/alertkit/alertkit.toml
type Config struct {
	Bar     BarConfig     `toml:"bar"`
	Title   TitleConfig   `toml:"title"`
	Theme   ThemeConfig   `toml:"theme"`
	Haptic  HapticConfig  `toml:"haptic"`
	Display DisplayConfig `toml:"display"`
}

// BarConfig holds the title and subtitle banner defaults.
type BarConfig struct {
	DismissByTap      bool     `toml:"dismiss_by_tap"`
	DismissInTime     bool     `toml:"dismiss_in_time"`
	Duration          Duration `toml:"duration"`
	EnterExitDuration Duration `toml:"enter_exit_duration"`
	EnterExitScale    float64  `toml:"enter_exit_scale"`
	CornerRadius      float64  `toml:"corner_radius"`
	BlurStyle         string   `toml:"blur_style"`
}

// TitleConfig holds the title-only banner defaults.
type TitleConfig struct {
	DismissByTap      bool     `toml:"dismiss_by_tap"`
	DismissInTime     bool     `toml:"dismiss_in_time"`
	Height            float64  `toml:"height"`
	YPosition         *float64 `toml:"y_position,omitempty"` // Unset = below the top safe inset
	EnterExitDuration Duration `toml:"enter_exit_duration"`
	EnterExitScale    float64  `toml:"enter_exit_scale"`
	DismissDuration   Duration `toml:"dismiss_duration"`
	BlurStyle         string   `toml:"blur_style"`
}

// ThemeConfig holds theme settings.
type ThemeConfig struct {
	Name        string `toml:"name"`         // Theme name without .css extension
	ColorScheme string `toml:"color_scheme"` // "system", "light" or "dark"
}

// HapticConfig holds impact feedback settings.
type HapticConfig struct {
	Enabled bool   `toml:"enabled"`
	Sound   string `toml:"sound"`  // Empty = synthesized tick
	Volume  int    `toml:"volume"` // 0-100
}

// DisplayConfig holds host surface settings.
type DisplayConfig struct {
	Monitor     int     `toml:"monitor"`      // 0 = primary, 1+ = specific monitor
	TopInset    float64 `toml:"top_inset"`    // Reserved space, e.g. a top panel
	BottomInset float64 `toml:"bottom_inset"` // Reserved space, e.g. a dock
}

// DefaultConfig returns a Config matching the banner construction defaults.
func DefaultConfig() *Config {
	bar := present.DefaultBarConfig()
	title := present.DefaultTitleConfig()

	return &Config{
		Bar: BarConfig{
			DismissByTap:      bar.DismissByTap,
			DismissInTime:     bar.DismissInTime,
			Duration:          Duration(bar.Duration),
			EnterExitDuration: Duration(bar.EnterExitDuration),
			EnterExitScale:    bar.EnterExitScale,
			CornerRadius:      bar.CornerRadius,
			BlurStyle:         string(bar.Blur),
		},
		Title: TitleConfig{
			DismissByTap:      title.DismissByTap,
			DismissInTime:     title.DismissInTime,
			Height:            title.Height,
			EnterExitDuration: Duration(title.EnterExitDuration),
			EnterExitScale:    title.EnterExitScale,
			DismissDuration:   Duration(title.Duration),
			BlurStyle:         string(title.Blur),
		},
		Theme: ThemeConfig{
			Name:        theme.DefaultThemeName,
			ColorScheme: string(theme.SchemeSystem),
		},
		Haptic: HapticConfig{
			Enabled: true,
			Volume:  60,
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "alertkit", "alertkit.toml"), nil
}

// Load reads the configuration at path, or the default path when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration atomically to path, or the default path
// when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	var errs []error

	checkScale := func(name string, v float64) {
		if v <= 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %g", name, v))
		}
	}
	checkDuration := func(name string, d Duration) {
		if d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %s", name, time.Duration(d)))
		}
	}

	checkScale("bar.enter_exit_scale", c.Bar.EnterExitScale)
	checkScale("title.enter_exit_scale", c.Title.EnterExitScale)
	checkDuration("bar.duration", c.Bar.Duration)
	checkDuration("bar.enter_exit_duration", c.Bar.EnterExitDuration)
	checkDuration("title.enter_exit_duration", c.Title.EnterExitDuration)
	checkDuration("title.dismiss_duration", c.Title.DismissDuration)

	if c.Bar.CornerRadius < 0 {
		errs = append(errs, fmt.Errorf("bar.corner_radius must not be negative, got %g", c.Bar.CornerRadius))
	}
	if c.Title.Height <= 0 {
		errs = append(errs, fmt.Errorf("title.height must be positive, got %g", c.Title.Height))
	}
	if _, err := theme.ParseBlurStyle(c.Bar.BlurStyle); err != nil {
		errs = append(errs, fmt.Errorf("bar.blur_style: %w", err))
	}
	if _, err := theme.ParseBlurStyle(c.Title.BlurStyle); err != nil {
		errs = append(errs, fmt.Errorf("title.blur_style: %w", err))
	}
	if _, err := theme.ParseScheme(c.Theme.ColorScheme); err != nil {
		errs = append(errs, fmt.Errorf("theme.color_scheme: %w", err))
	}
	if c.Haptic.Volume < 0 || c.Haptic.Volume > 100 {
		errs = append(errs, fmt.Errorf("haptic.volume must be between 0 and 100, got %d", c.Haptic.Volume))
	}
	if c.Display.Monitor < 0 {
		errs = append(errs, fmt.Errorf("display.monitor must not be negative, got %d", c.Display.Monitor))
	}
	if c.Display.TopInset < 0 || c.Display.BottomInset < 0 {
		errs = append(errs, errors.New("display insets must not be negative"))
	}

	return errors.Join(errs...)
}

// BarPresentation converts the bar section to a banner construction config.
// haptic may be nil.
func (c *Config) BarPresentation(haptic present.Haptic) present.BarConfig {
	blur, _ := theme.ParseBlurStyle(c.Bar.BlurStyle)
	cfg := present.DefaultBarConfig()
	cfg.DismissByTap = c.Bar.DismissByTap
	cfg.DismissInTime = c.Bar.DismissInTime
	cfg.Duration = c.Bar.Duration.Duration()
	cfg.EnterExitDuration = c.Bar.EnterExitDuration.Duration()
	cfg.EnterExitScale = c.Bar.EnterExitScale
	cfg.CornerRadius = c.Bar.CornerRadius
	cfg.Blur = blur
	cfg.Haptic = haptic
	return cfg
}

// TitlePresentation converts the title section to a banner construction
// config.
func (c *Config) TitlePresentation() present.TitleConfig {
	blur, _ := theme.ParseBlurStyle(c.Title.BlurStyle)
	cfg := present.DefaultTitleConfig()
	cfg.DismissByTap = c.Title.DismissByTap
	cfg.DismissInTime = c.Title.DismissInTime
	cfg.Height = c.Title.Height
	cfg.EnterExitDuration = c.Title.EnterExitDuration.Duration()
	cfg.EnterExitScale = c.Title.EnterExitScale
	cfg.Duration = c.Title.DismissDuration.Duration()
	cfg.Blur = blur
	if c.Title.YPosition != nil {
		y := *c.Title.YPosition
		cfg.YPosition = &y
	}
	return cfg
}

// Scheme returns the configured color scheme.
func (c *Config) Scheme() theme.Scheme {
	s, _ := theme.ParseScheme(c.Theme.ColorScheme)
	return s
}
