package present

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/anim"
	"github.com/jmylchreest/alertkit/internal/banner"
	"github.com/jmylchreest/alertkit/internal/geom"
	"github.com/jmylchreest/alertkit/internal/icon"
)

type fakeHost struct {
	bounds   geom.Rect
	insets   geom.Insets
	dead     bool
	children []*Element
	attached int
	detached int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		bounds: geom.Rect{Width: 400, Height: 800},
		insets: geom.Insets{Top: 47, Bottom: 34},
	}
}

func (h *fakeHost) AttachChild(e *Element) {
	h.attached++
	h.children = append(h.children, e)
}

func (h *fakeHost) DetachChild(e *Element) {
	h.detached++
	for i, c := range h.children {
		if c == e {
			h.children = append(h.children[:i], h.children[i+1:]...)
			return
		}
	}
}

func (h *fakeHost) Bounds() geom.Rect       { return h.bounds }
func (h *fakeHost) SafeInsets() geom.Insets { return h.insets }
func (h *fakeHost) Alive() bool             { return !h.dead }

type completions struct {
	causes []Cause
}

func (c *completions) record(cause Cause) { c.causes = append(c.causes, cause) }

func newTestBar(loop anim.Loop, content banner.Content) *Bar {
	return NewBar(content, DefaultBarConfig(), Options{Loop: loop})
}

func TestBar_SavedAutoDismissesOnce(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	assert.Equal(t, StatePresenting, bar.State())
	assert.Equal(t, 1, host.attached)

	elem := bar.Element()
	assert.Equal(t, 0.0, elem.Alpha())
	assert.Equal(t, geom.Scale(0.8), elem.Transform())
	assert.Equal(t, geom.Rect{X: 200 - 53.5/2, Y: 800 - 34 - 34 - 64, Width: 53.5, Height: 34}, elem.Frame())
	assert.LessOrEqual(t, elem.Frame().Width, 270.0)

	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, StateVisible, bar.State())
	assert.Equal(t, 1.0, elem.Alpha())
	assert.True(t, elem.Transform().IsIdentity())
	assert.True(t, elem.Tappable())

	loop.Advance(1500 * time.Millisecond)
	assert.Equal(t, StateDismissing, bar.State())
	assert.Equal(t, CauseTimer, bar.Cause())
	assert.False(t, elem.Tappable())

	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, StateDismissed, bar.State())
	assert.Equal(t, 0.0, elem.Alpha())
	assert.InDelta(t, 0.8, elem.Transform().ScaleX, 1e-9)
	assert.Equal(t, []Cause{CauseTimer}, done.causes)
	assert.Equal(t, 1, host.detached)
	assert.Empty(t, host.children)

	loop.Advance(10 * time.Second)
	assert.Len(t, done.causes, 1)
	assert.Equal(t, 0, loop.Pending())
}

func TestBar_RepeatedDismissRunsOneExit(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	loop.Advance(200 * time.Millisecond)

	bar.Dismiss()
	loop.Advance(100 * time.Millisecond)
	mid := bar.Element().Alpha()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 1.0)

	bar.Dismiss()
	bar.Dismiss()
	assert.Equal(t, mid, bar.Element().Alpha(), "a second dismiss must not restart the exit")

	loop.Advance(100 * time.Millisecond)
	assert.Equal(t, StateDismissed, bar.State())

	bar.Dismiss()
	loop.Advance(5 * time.Second)
	assert.Equal(t, []Cause{CauseExternal}, done.causes)
	assert.Equal(t, 1, host.detached)
}

func TestBar_StaleTimerIsHarmless(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	loop.Advance(300 * time.Millisecond)
	bar.Dismiss()
	loop.Advance(200 * time.Millisecond)

	assert.Equal(t, StateDismissed, bar.State())
	assert.Equal(t, 1, loop.Pending(), "auto-dismiss timer stays scheduled")

	loop.Advance(2 * time.Second)
	assert.Equal(t, 0, loop.Pending())
	assert.Equal(t, StateDismissed, bar.State())
	assert.Equal(t, []Cause{CauseExternal}, done.causes)
	assert.Equal(t, 1, host.detached)
}

func TestBar_TapDismissesImmediately(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Error", Icon: icon.KindDone})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	assert.False(t, bar.Element().Tap(), "tap is not recognized during the enter animation")

	loop.Advance(200 * time.Millisecond)
	require.Equal(t, StateVisible, bar.State())

	assert.True(t, bar.Element().Tap())
	assert.Equal(t, StateDismissing, bar.State())
	assert.Equal(t, CauseTap, bar.Cause())
	assert.False(t, bar.Element().Tap())

	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, StateDismissed, bar.State())
	assert.Equal(t, 0.0, bar.Element().Alpha())

	loop.Advance(1500 * time.Millisecond)
	assert.Equal(t, []Cause{CauseTap}, done.causes)
	assert.Equal(t, 1, host.detached)
}

func TestBar_IconAnimatesAfterEnter(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Error", Icon: icon.KindDone})
	ic := bar.Element().Icon()
	require.NotNil(t, ic)

	loop.Advance(time.Second)
	assert.Empty(t, ic.Layers(), "never presented")

	require.NoError(t, bar.Present(host, nil))
	loop.Advance(199 * time.Millisecond)
	assert.Empty(t, ic.Layers(), "still entering")

	loop.Advance(time.Millisecond)
	require.Len(t, ic.Layers(), 1)
	assert.Equal(t, 20.0, ic.Frame().Width)

	loop.Advance(300 * time.Millisecond)
	assert.Equal(t, 1.0, ic.Layers()[0].StrokeEnd)
}

func TestBar_HapticFiresAtEnterStart(t *testing.T) {
	loop := anim.NewManualLoop()
	impacts := 0
	cfg := DefaultBarConfig()
	cfg.Haptic = HapticFunc(func() { impacts++ })
	bar := NewBar(banner.Content{Title: "Saved"}, cfg, Options{Loop: loop})

	require.NoError(t, bar.Present(newFakeHost(), nil))
	assert.Equal(t, 1, impacts)
	assert.Equal(t, 0.0, bar.Element().Alpha())

	loop.Advance(5 * time.Second)
	assert.Equal(t, 1, impacts)
}

func TestBar_PresentGuards(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})

	assert.ErrorIs(t, bar.Present(nil, nil), ErrNilHost)
	assert.Equal(t, StateIdle, bar.State())

	host := newFakeHost()
	require.NoError(t, bar.Present(host, nil))
	assert.ErrorIs(t, bar.Present(host, nil), ErrAlreadyPresented)
	assert.Equal(t, 1, host.attached)

	loop.Advance(5 * time.Second)
	assert.Equal(t, StateDismissed, bar.State())
	assert.ErrorIs(t, bar.Present(host, nil), ErrAlreadyPresented)
}

func TestBar_PresentRejectsDeadHost(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})
	var done completions

	host := newFakeHost()
	host.dead = true
	assert.ErrorIs(t, bar.Present(host, done.record), ErrHostGone)
	assert.Equal(t, StateIdle, bar.State())
	assert.Equal(t, 0, host.attached)
	assert.Equal(t, 0, loop.Pending())

	host.dead = false
	require.NoError(t, bar.Present(host, done.record))
	assert.Equal(t, 1, host.attached)
}

func TestBar_DismissBeforePresentIsNoop(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})

	bar.Dismiss()
	assert.Equal(t, StateIdle, bar.State())
	assert.Equal(t, 0, loop.Pending())

	require.NoError(t, bar.Present(newFakeHost(), nil))
}

func TestBar_DismissWhilePresenting(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Error", Icon: icon.KindError})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	loop.Advance(100 * time.Millisecond)
	bar.Dismiss()
	assert.Equal(t, StateDismissing, bar.State())

	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, StateDismissed, bar.State())
	assert.Empty(t, bar.Element().Icon().Layers(), "icon never animates")
	assert.Equal(t, 0, loop.Pending(), "no auto-dismiss timer was armed")
	assert.Equal(t, []Cause{CauseExternal}, done.causes)
}

func TestBar_NoAutoDismiss(t *testing.T) {
	loop := anim.NewManualLoop()
	cfg := DefaultBarConfig()
	cfg.DismissInTime = false
	cfg.DismissByTap = false
	bar := NewBar(banner.Content{Title: "Pinned"}, cfg, Options{Loop: loop})

	require.NoError(t, bar.Present(newFakeHost(), nil))
	loop.Advance(time.Minute)
	assert.Equal(t, StateVisible, bar.State())
	assert.False(t, bar.Element().Tap())
}

func TestBar_DurationSetters(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})

	require.NoError(t, bar.SetDuration(3*time.Second))
	require.NoError(t, bar.SetEnterExitDuration(100*time.Millisecond))
	require.NoError(t, bar.Present(newFakeHost(), nil))

	assert.ErrorIs(t, bar.SetDuration(time.Second), ErrAlreadyPresented)
	assert.ErrorIs(t, bar.SetEnterExitDuration(time.Second), ErrAlreadyPresented)
	assert.ErrorIs(t, bar.SetHaptic(nil), ErrAlreadyPresented)

	loop.Advance(100 * time.Millisecond)
	assert.Equal(t, StateVisible, bar.State())
	loop.Advance(2 * time.Second)
	assert.Equal(t, StateVisible, bar.State())
	loop.Advance(time.Second)
	assert.Equal(t, StateDismissing, bar.State())
}

func TestBar_SizeThatFitsDoesNotTouchState(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})

	assert.Equal(t, geom.Size{Width: 53.5, Height: 34}, bar.SizeThatFits(400))
	assert.Equal(t, StateIdle, bar.State())
	assert.Equal(t, 0, loop.Pending())
}

func TestBar_ResizeSkippedWhileScaled(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Done", Icon: icon.KindDone})

	require.NoError(t, bar.Present(newFakeHost(), nil))
	before := bar.Element().Layout()

	bar.Element().Resize(geom.Size{Width: 200, Height: 80})
	assert.Equal(t, before, bar.Element().Layout())

	loop.Advance(200 * time.Millisecond)
	bar.Element().Resize(geom.Size{Width: 200, Height: 80})
	layout := bar.Element().Layout()
	assert.Equal(t, 200.0, layout.Size.Width)
	require.NotNil(t, layout.Icon)
	assert.Equal(t, 40.0, layout.Icon.MidY())
}

func TestBar_HostGoneBeforeTeardown(t *testing.T) {
	loop := anim.NewManualLoop()
	host := newFakeHost()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})
	var done completions

	require.NoError(t, bar.Present(host, done.record))
	loop.Advance(200 * time.Millisecond)
	host.dead = true

	bar.Dismiss()
	loop.Advance(200 * time.Millisecond)
	assert.Equal(t, StateDismissed, bar.State())
	assert.Equal(t, 0, host.detached)
	assert.Equal(t, []Cause{CauseExternal}, done.causes)
}

func TestBar_ObserverSeesChanges(t *testing.T) {
	loop := anim.NewManualLoop()
	bar := newTestBar(loop, banner.Content{Title: "Saved"})

	var alphas []float64
	cancel := bar.Element().Observe(func(e *Element) { alphas = append(alphas, e.Alpha()) })

	require.NoError(t, bar.Present(newFakeHost(), nil))
	loop.Advance(200 * time.Millisecond)
	require.NotEmpty(t, alphas)
	assert.Equal(t, 1.0, alphas[len(alphas)-1])

	cancel()
	n := len(alphas)
	bar.Dismiss()
	loop.Advance(time.Second)
	assert.Len(t, alphas, n)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "presenting", StatePresenting.String())
	assert.Equal(t, "visible", StateVisible.String())
	assert.Equal(t, "dismissing", StateDismissing.String())
	assert.Equal(t, "dismissed", StateDismissed.String())
	assert.Equal(t, "tap", CauseTap.String())
}
