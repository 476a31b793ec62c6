package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/icon"
	"github.com/jmylchreest/alertkit/internal/present"
)

func TestBannerOpts_Notification(t *testing.T) {
	tests := []struct {
		name    string
		opts    bannerOpts
		variant present.Variant
		icon    icon.Kind
		timeout time.Duration
		sticky  bool
	}{
		{
			name:    "bar with checkmark",
			opts:    bannerOpts{kind: "bar", icon: "done"},
			variant: present.VariantBar,
			icon:    icon.KindDone,
		},
		{
			name:    "title",
			opts:    bannerOpts{kind: "title", icon: "none"},
			variant: present.VariantTitle,
			icon:    icon.KindNone,
		},
		{
			name:    "timeout",
			opts:    bannerOpts{kind: "bar", icon: "error", timeout: 3 * time.Second},
			variant: present.VariantBar,
			icon:    icon.KindError,
			timeout: 3 * time.Second,
		},
		{
			name:    "sticky wins over timeout",
			opts:    bannerOpts{kind: "bar", icon: "none", timeout: time.Second, sticky: true},
			variant: present.VariantBar,
			icon:    icon.KindNone,
			sticky:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.opts.notification("Saved", "to disk")
			require.NoError(t, err)

			req := n.Request()
			assert.Equal(t, tt.variant, req.Variant)
			assert.Equal(t, tt.icon, req.Content.Icon)
			assert.Equal(t, "Saved", req.Content.Title)
			assert.Equal(t, "to disk", req.Content.Subtitle)
			assert.Equal(t, tt.timeout, req.Timeout)
			assert.Equal(t, tt.sticky, req.Sticky)
		})
	}
}

func TestBannerOpts_NotificationErrors(t *testing.T) {
	_, err := bannerOpts{kind: "toast", icon: "none"}.notification("a", "")
	assert.Error(t, err)

	_, err = bannerOpts{kind: "bar", icon: "star"}.notification("a", "")
	assert.Error(t, err)

	_, err = bannerOpts{kind: "bar", icon: "none", timeout: -time.Second}.notification("a", "")
	assert.Error(t, err)
}
