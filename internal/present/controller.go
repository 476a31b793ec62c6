package present

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
)

// Host is the surface a banner attaches to. The controller only ever
// attaches and detaches its own element; it never mutates other host state.
type Host interface {
	AttachChild(e *Element)
	DetachChild(e *Element)
	Bounds() geom.Rect
	SafeInsets() geom.Insets
}

// LivenessChecker is implemented by hosts that can disappear while a banner
// is attached. A host that is no longer alive is not touched again.
type LivenessChecker interface {
	Alive() bool
}

// sizer is the variant-specific part of a banner: how it measures itself
// and where it sits on the host.
type sizer interface {
	sizeThatFits(hostWidth float64) banner.Result
	relayout(bounds geom.Size) banner.Result
	origin(host geom.Rect, insets geom.Insets, size geom.Size) geom.Point
	// recenter reports whether the banner re-centers on the host during
	// every layout pass.
	recenter() bool
}

// Controller owns the presentation state machine of one banner. It is not
// safe for concurrent use; every method must run on the banner's loop.
type Controller struct {
	cfg    Config
	loop   anim.Loop
	logger *slog.Logger
	sizer  sizer
	elem   *Element

	state      State
	host       Host
	completion func(Cause)
	cause      Cause
	animation  *anim.Animation
}

func newController(cfg Config, sz sizer, elem *Element, opts Options) *Controller {
	if opts.Loop == nil {
		panic("present: Options.Loop is required")
	}
	c := &Controller{
		cfg:    cfg,
		loop:   opts.Loop,
		logger: opts.Logger.With("banner", elem.ID().String(), "variant", elem.Variant().String()),
		sizer:  sz,
		elem:   elem,
	}
	elem.onTap = func() { c.dismiss(CauseTap) }
	elem.onResize = c.resize
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Element returns the renderable state of the banner.
func (c *Controller) Element() *Element { return c.elem }

// Config returns the presentation configuration.
func (c *Controller) Config() Config { return c.cfg }

// Cause returns what dismissed the banner, or CauseNone.
func (c *Controller) Cause() Cause { return c.cause }

// SetDuration changes the visible duration. It only applies before Present.
func (c *Controller) SetDuration(d time.Duration) error {
	if c.state != StateIdle {
		return ErrAlreadyPresented
	}
	c.cfg.Duration = d
	return nil
}

// SetEnterExitDuration changes the enter and exit animation duration. It
// only applies before Present.
func (c *Controller) SetEnterExitDuration(d time.Duration) error {
	if c.state != StateIdle {
		return ErrAlreadyPresented
	}
	c.cfg.EnterExitDuration = d
	return nil
}

// SetHaptic changes the impact fired when the enter animation starts. It
// only applies before Present.
func (c *Controller) SetHaptic(h Haptic) error {
	if c.state != StateIdle {
		return ErrAlreadyPresented
	}
	c.cfg.Haptic = h
	return nil
}

// SizeThatFits reports the size the banner would take on a host of the
// given width. It does not touch the state machine.
func (c *Controller) SizeThatFits(hostWidth float64) geom.Size {
	return c.sizer.sizeThatFits(hostWidth).Size
}

// Present attaches the banner to host and starts the enter animation.
// completion, if non-nil, is called exactly once after the banner has been
// detached. Present returns ErrNilHost, ErrHostGone or ErrAlreadyPresented
// without changing any state.
func (c *Controller) Present(host Host, completion func(Cause)) error {
	if host == nil {
		c.logger.Debug("present rejected", "error", ErrNilHost)
		return ErrNilHost
	}
	if lc, ok := host.(LivenessChecker); ok && !lc.Alive() {
		c.logger.Debug("present rejected", "error", ErrHostGone)
		return ErrHostGone
	}
	if c.state != StateIdle {
		c.logger.Debug("present rejected", "state", c.state, "error", ErrAlreadyPresented)
		return ErrAlreadyPresented
	}

	c.host = host
	c.completion = completion
	c.transition(StatePresenting)

	host.AttachChild(c.elem)

	bounds := host.Bounds()
	fit := c.sizer.sizeThatFits(bounds.Width)
	origin := c.sizer.origin(bounds, host.SafeInsets(), fit.Size)
	c.elem.setLayout(fit)
	c.elem.setFrame(geom.RectFrom(origin, fit.Size))

	scaled := geom.Scale(c.cfg.EnterExitScale)
	c.elem.setAppearance(0, scaled)

	if c.cfg.Haptic != nil {
		c.cfg.Haptic.Impact()
	}

	c.animation = anim.Run(c.loop, c.animSpec(), func(p float64) {
		c.elem.setAppearance(p, geom.LerpTransform(scaled, geom.Identity, p))
	}, c.entered)
	return nil
}

// Dismiss starts the exit animation. It is a no-op unless the banner is
// presenting or visible, so repeated calls dismiss only once.
func (c *Controller) Dismiss() {
	c.dismiss(CauseExternal)
}

func (c *Controller) entered() {
	c.animation = nil
	c.transition(StateVisible)
	c.layoutSubviews()

	if ic := c.elem.Icon(); ic != nil {
		ic.Animate()
	}
	if c.cfg.DismissByTap {
		c.elem.tappable = true
		c.elem.changed()
	}
	if c.cfg.DismissInTime {
		// The timer is never stopped; a stale fire finds the banner already
		// transparent and does nothing.
		c.loop.AfterFunc(c.cfg.Duration, func() {
			if c.elem.Alpha() != 0 {
				c.dismiss(CauseTimer)
			}
		})
	}
}

func (c *Controller) dismiss(cause Cause) {
	switch c.state {
	case StatePresenting, StateVisible:
	default:
		c.logger.Debug("dismiss ignored", "state", c.state, "cause", cause)
		return
	}

	if c.animation != nil {
		c.animation.Cancel()
		c.animation = nil
	}

	c.cause = cause
	c.elem.tappable = false
	c.transition(StateDismissing)

	fromAlpha := c.elem.Alpha()
	fromTransform := c.elem.Transform()
	toTransform := fromTransform.Concat(geom.Scale(c.cfg.EnterExitScale))

	c.animation = anim.Run(c.loop, c.animSpec(), func(p float64) {
		c.elem.setAppearance(geom.Lerp(fromAlpha, 0, p), geom.LerpTransform(fromTransform, toTransform, p))
	}, c.dismissed)
}

func (c *Controller) dismissed() {
	c.animation = nil
	c.transition(StateDismissed)

	if c.hostAlive() {
		c.host.DetachChild(c.elem)
	}
	c.host = nil

	if done := c.completion; done != nil {
		c.completion = nil
		done(c.cause)
	}
}

func (c *Controller) resize(size geom.Size) {
	if c.state == StateIdle || c.state == StateDismissed {
		return
	}
	frame := c.elem.Frame()
	frame.Width, frame.Height = size.Width, size.Height
	c.elem.frame = frame
	c.layoutSubviews()
}

// layoutSubviews re-evaluates the internal layout against the current
// frame. Scaled transient frames are never measured.
func (c *Controller) layoutSubviews() {
	if !c.elem.Transform().IsIdentity() {
		return
	}
	frame := c.elem.Frame()
	if c.sizer.recenter() && c.hostAlive() {
		frame = frame.WithCenterX(c.host.Bounds().MidX())
		c.elem.frame = frame
	}
	c.elem.setLayout(c.sizer.relayout(frame.Size()))
}

func (c *Controller) hostAlive() bool {
	if c.host == nil {
		return false
	}
	if lc, ok := c.host.(LivenessChecker); ok {
		return lc.Alive()
	}
	return true
}

func (c *Controller) animSpec() anim.Spec {
	return anim.Spec{Duration: c.cfg.EnterExitDuration, Curve: anim.EaseInEaseOut}
}

func (c *Controller) transition(to State) {
	c.logger.Debug("banner state changed", "from", c.state, "to", to)
	c.state = to
}
