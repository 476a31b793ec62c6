package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/icon"
)

func TestRequest_Build(t *testing.T) {
	loop := anim.NewManualLoop()
	opts := Options{Loop: loop}

	tests := []struct {
		name    string
		req     Request
		variant Variant
		title   string
		icon    icon.Kind
	}{
		{
			name:    "bar keeps content",
			req:     Request{Content: banner.Content{Title: "Saved", Subtitle: "to disk", Icon: icon.KindDone}},
			variant: VariantBar,
			title:   "Saved",
			icon:    icon.KindDone,
		},
		{
			name:    "title drops icon",
			req:     Request{Variant: VariantTitle, Content: banner.Content{Title: "Copied", Icon: icon.KindError}},
			variant: VariantTitle,
			title:   "Copied",
			icon:    icon.KindNone,
		},
		{
			name:    "title falls back to subtitle",
			req:     Request{Variant: VariantTitle, Content: banner.Content{Subtitle: "Copied"}},
			variant: VariantTitle,
			title:   "Copied",
			icon:    icon.KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.req.Build(DefaultBarConfig(), DefaultTitleConfig(), opts)
			assert.Equal(t, tt.variant, c.Element().Variant())
			assert.Equal(t, tt.title, c.Element().Content().Title)
			assert.Equal(t, tt.icon, c.Element().Content().Icon)
			assert.Equal(t, StateIdle, c.State())
		})
	}
}

func TestRequest_TimeoutOverridesDuration(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	c := Request{Content: banner.Content{Title: "Saved"}, Timeout: 3 * time.Second}.
		Build(DefaultBarConfig(), DefaultTitleConfig(), Options{Loop: loop})

	assert.Equal(t, 3*time.Second, c.Config().Duration)
	require.NoError(t, c.Present(host, nil))

	loop.Advance(200*time.Millisecond + 1500*time.Millisecond + 200*time.Millisecond)
	assert.Equal(t, StateVisible, c.State())

	loop.Advance(1500*time.Millisecond + 200*time.Millisecond)
	assert.Equal(t, StateDismissed, c.State())
	assert.Equal(t, CauseTimer, c.Cause())
}

func TestRequest_StickyNeverTimesOut(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	c := Request{Variant: VariantTitle, Content: banner.Content{Title: "Pinned"}, Sticky: true, Timeout: time.Second}.
		Build(DefaultBarConfig(), DefaultTitleConfig(), Options{Loop: loop})

	assert.False(t, c.Config().DismissInTime)
	require.NoError(t, c.Present(host, nil))

	loop.Advance(time.Minute)
	assert.Equal(t, StateVisible, c.State())

	assert.True(t, c.Element().Tap())
	loop.Advance(500 * time.Millisecond)
	assert.Equal(t, StateDismissed, c.State())
	assert.Equal(t, CauseTap, c.Cause())
}
