package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/present"
	"github.com/jmylchreest/alertkit/internal/theme"
)

func TestDefaultConfig_MatchesConstructionDefaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bar := cfg.BarPresentation(nil)
	assert.True(t, bar.DismissByTap)
	assert.True(t, bar.DismissInTime)
	assert.Equal(t, 1500*time.Millisecond, bar.Duration)
	assert.Equal(t, 200*time.Millisecond, bar.EnterExitDuration)
	assert.Equal(t, 0.8, bar.EnterExitScale)
	assert.Equal(t, 14.0, bar.CornerRadius)
	assert.Equal(t, theme.BlurMaterial, bar.Blur)

	title := cfg.TitlePresentation()
	assert.Equal(t, 42.0, title.Height)
	assert.Nil(t, title.YPosition)
	assert.Equal(t, 500*time.Millisecond, title.EnterExitDuration)
	assert.Equal(t, 0.8, title.EnterExitScale)
	assert.Equal(t, 1500*time.Millisecond, title.Duration)

	assert.Equal(t, theme.SchemeSystem, cfg.Scheme())
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alertkit.toml")
	content := `
[bar]
duration = "3s"
enter_exit_duration = "350"
dismiss_by_tap = false
blur_style = "thin"

[title]
y_position = 100.0
height = 36.0

[theme]
name = "minimal"
color_scheme = "dark"

[haptic]
enabled = false
volume = 25

[display]
monitor = 2
bottom_inset = 48.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Bar.Duration.Duration())
	assert.Equal(t, 350*time.Millisecond, cfg.Bar.EnterExitDuration.Duration())
	assert.False(t, cfg.Bar.DismissByTap)
	assert.True(t, cfg.Bar.DismissInTime, "unset keys keep their defaults")
	assert.Equal(t, 0.8, cfg.Bar.EnterExitScale)

	require.NotNil(t, cfg.Title.YPosition)
	assert.Equal(t, 100.0, *cfg.TitlePresentation().YPosition)
	assert.Equal(t, 36.0, cfg.Title.Height)

	assert.Equal(t, theme.SchemeDark, cfg.Scheme())
	assert.False(t, cfg.Haptic.Enabled)
	assert.Equal(t, 2, cfg.Display.Monitor)
	assert.Equal(t, 48.0, cfg.Display.BottomInset)

	haptic := present.HapticFunc(func() {})
	assert.NotNil(t, cfg.BarPresentation(haptic).Haptic)
	assert.Equal(t, theme.BlurThin, cfg.BarPresentation(nil).Blur)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[bar\nduration ="), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[bar]\nenter_exit_scale = 1.5\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "invalid configuration")

	dur := filepath.Join(dir, "dur.toml")
	require.NoError(t, os.WriteFile(dur, []byte("[bar]\nduration = \"soon\"\n"), 0o644))
	_, err = Load(dur)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero scale", func(c *Config) { c.Bar.EnterExitScale = 0 }, "bar.enter_exit_scale"},
		{"negative duration", func(c *Config) { c.Title.DismissDuration = Duration(-time.Second) }, "title.dismiss_duration"},
		{"zero height", func(c *Config) { c.Title.Height = 0 }, "title.height"},
		{"bad blur", func(c *Config) { c.Bar.BlurStyle = "frosted" }, "bar.blur_style"},
		{"bad scheme", func(c *Config) { c.Theme.ColorScheme = "sepia" }, "theme.color_scheme"},
		{"volume", func(c *Config) { c.Haptic.Volume = 101 }, "haptic.volume"},
		{"insets", func(c *Config) { c.Display.TopInset = -1 }, "insets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "alertkit.toml")

	cfg := DefaultConfig()
	y := 120.0
	cfg.Title.YPosition = &y
	cfg.Bar.Duration = Duration(2500 * time.Millisecond)
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_ReplaceFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the rename fail.
	path := filepath.Join(dir, "alertkit.toml")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o700))

	err := DefaultConfig().Save(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace config file")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"1.5s", 1500 * time.Millisecond, false},
		{"200ms", 200 * time.Millisecond, false},
		{"1500", 1500 * time.Millisecond, false},
		{"0", 0, false},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}

	text, err := Duration(1500 * time.Millisecond).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1.5s", string(text))
}
