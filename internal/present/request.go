package present

import (
	"time"

	"github.com/jmylchreest/alertkit/internal/banner"
)

// Request describes a banner raised on behalf of another component, such
// as a D-Bus client or the terminal demo.
type Request struct {
	Variant Variant
	Content banner.Content
	// Timeout replaces the configured visible duration when positive.
	Timeout time.Duration
	// Sticky disables timed dismissal; the banner stays until tapped or
	// dismissed.
	Sticky bool
}

// Build constructs the banner for r from the variant defaults in bar and
// title. The title-only variant falls back to the subtitle when there is
// no title.
func (r Request) Build(bar BarConfig, title TitleConfig, opts Options) *Controller {
	if r.Variant == VariantTitle {
		text := r.Content.Title
		if text == "" {
			text = r.Content.Subtitle
		}
		r.apply(&title.Config)
		return NewTitleBar(text, title, opts).Controller
	}
	r.apply(&bar.Config)
	return NewBar(r.Content, bar, opts).Controller
}

func (r Request) apply(cfg *Config) {
	switch {
	case r.Sticky:
		cfg.DismissInTime = false
	case r.Timeout > 0:
		cfg.Duration = r.Timeout
	}
}
