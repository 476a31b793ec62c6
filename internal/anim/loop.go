package anim

import (
	"sync/atomic"
	"time"
)

// Loop schedules callbacks on a single event loop.
type Loop interface {
	// AfterFunc runs fn on the loop once d has elapsed. A non-positive d
	// runs fn on a later loop turn, never synchronously.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now returns the loop's notion of the current time.
	Now() time.Time
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer, false if it already ran or was stopped.
	Stop() bool
}

// DispatchLoop runs callbacks by posting them onto an existing event loop,
// such as the GLib main context or a terminal program's update loop.
// Timers are driven by wall-clock time; post must be safe to call from any
// goroutine and must run the posted function on the loop goroutine. post is
// only ever called from timer goroutines, so it may block until the loop
// accepts the function.
type DispatchLoop struct {
	post func(func())
}

// NewDispatchLoop creates a loop that hands callbacks to post.
func NewDispatchLoop(post func(func())) *DispatchLoop {
	return &DispatchLoop{post: post}
}

// Now implements Loop.
func (l *DispatchLoop) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Loop.
func (l *DispatchLoop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &dispatchTimer{}
	run := func() {
		if t.fired.CompareAndSwap(false, true) {
			fn()
		}
	}
	t.timer = time.AfterFunc(max(d, 0), func() { l.post(run) })
	return t
}

type dispatchTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

func (t *dispatchTimer) Stop() bool {
	if !t.fired.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}
