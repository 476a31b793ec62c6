package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/geom"
)

func TestTitleBar_YPositionOverridesInsets(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()

	cfg := DefaultTitleConfig()
	y := 100.0
	cfg.YPosition = &y
	pinned := NewTitleBar("Copied", cfg, Options{Loop: loop})
	require.NoError(t, pinned.Present(host, nil))
	assert.Equal(t, 100.0, pinned.Element().Frame().Y)

	host.insets.Top = 90
	free := NewTitleBar("Copied", DefaultTitleConfig(), Options{Loop: loop})
	require.NoError(t, free.Present(host, nil))
	frame := free.Element().Frame()
	assert.Equal(t, 50.0, frame.Height)
	assert.Equal(t, 90+frame.Height, frame.Y)
}

func TestTitleBar_Lifecycle(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	title := NewTitleBar("Copied", DefaultTitleConfig(), Options{Loop: loop})
	var done completions

	require.NoError(t, title.Present(host, done.record))
	assert.Equal(t, VariantTitle, title.Element().Variant())
	assert.Nil(t, title.Element().Icon())
	assert.Equal(t, 8.0, title.Element().Style().CornerRadius)
	assert.LessOrEqual(t, title.Element().Frame().Width, 390.0)

	loop.Advance(499 * time.Millisecond)
	assert.Equal(t, StatePresenting, title.State())
	loop.Advance(time.Millisecond)
	assert.Equal(t, StateVisible, title.State())

	loop.Advance(1500 * time.Millisecond)
	assert.Equal(t, StateDismissing, title.State())
	loop.Advance(500 * time.Millisecond)
	assert.Equal(t, StateDismissed, title.State())
	assert.Equal(t, []Cause{CauseTimer}, done.causes)
}

func TestTitleBar_RecentersOnLayout(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	title := NewTitleBar("Copied", DefaultTitleConfig(), Options{Loop: loop})

	require.NoError(t, title.Present(host, nil))
	loop.Advance(500 * time.Millisecond)
	assert.Equal(t, 200.0, title.Element().Frame().MidX())

	host.bounds = geom.Rect{Width: 1000, Height: 800}
	title.Element().Resize(geom.Size{Width: 120, Height: 50})
	frame := title.Element().Frame()
	assert.Equal(t, 500.0, frame.MidX())
	assert.Equal(t, 120.0, frame.Width)
}
