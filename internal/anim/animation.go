package anim

import "time"

// DefaultFrameInterval is the step between animation frames (~60 Hz).
const DefaultFrameInterval = time.Second / 60

// Spec describes a single timed animation.
type Spec struct {
	Duration      time.Duration
	Curve         Curve         // Nil means Linear
	FrameInterval time.Duration // Zero means DefaultFrameInterval
}

// Animation is a running frame-stepped animation.
type Animation struct {
	loop  Loop
	spec  Spec
	step  func(progress float64)
	done  func()
	start time.Time
	timer Timer

	finished bool
}

// Run starts an animation on loop. step is called with eased progress
// immediately with 0, on every frame, and finally with exactly 1; done runs
// after the final step on a later loop turn than Run itself. Either callback
// may be nil.
func Run(loop Loop, spec Spec, step func(progress float64), done func()) *Animation {
	if spec.Curve == nil {
		spec.Curve = Linear
	}
	if spec.FrameInterval <= 0 {
		spec.FrameInterval = DefaultFrameInterval
	}

	a := &Animation{
		loop:  loop,
		spec:  spec,
		step:  step,
		done:  done,
		start: loop.Now(),
	}
	a.apply(0)
	a.schedule()
	return a
}

// Cancel stops the animation where it is. The done callback is not run.
// It reports whether the animation was still running.
func (a *Animation) Cancel() bool {
	if a.finished {
		return false
	}
	a.finished = true
	if a.timer != nil {
		a.timer.Stop()
	}
	return true
}

// Finished reports whether the animation completed or was cancelled.
func (a *Animation) Finished() bool {
	return a.finished
}

func (a *Animation) schedule() {
	delay := a.spec.FrameInterval
	if remaining := a.spec.Duration - a.loop.Now().Sub(a.start); remaining < delay {
		delay = remaining
	}
	a.timer = a.loop.AfterFunc(delay, a.frame)
}

func (a *Animation) frame() {
	if a.finished {
		return
	}

	elapsed := a.loop.Now().Sub(a.start)
	if a.spec.Duration <= 0 || elapsed >= a.spec.Duration {
		a.finished = true
		if a.step != nil {
			a.step(1)
		}
		if a.done != nil {
			a.done()
		}
		return
	}

	a.apply(float64(elapsed) / float64(a.spec.Duration))
	a.schedule()
}

func (a *Animation) apply(linear float64) {
	if a.step != nil {
		a.step(a.spec.Curve(linear))
	}
}
