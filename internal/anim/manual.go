package anim

import (
	"container/heap"
	"time"
)

// ManualLoop is a Loop driven by a virtual clock. Nothing runs until Advance
// is called, which makes presentation timing fully deterministic.
type ManualLoop struct {
	now    time.Time
	seq    uint64
	timers timerHeap
}

// NewManualLoop creates a virtual loop starting at the Unix epoch.
func NewManualLoop() *ManualLoop {
	return &ManualLoop{now: time.Unix(0, 0)}
}

// Now implements Loop.
func (l *ManualLoop) Now() time.Time {
	return l.now
}

// AfterFunc implements Loop.
func (l *ManualLoop) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &manualTimer{when: l.now.Add(d), seq: l.seq, fn: fn}
	heap.Push(&l.timers, t)
	return t
}

// Advance moves the clock forward by d, running every callback that comes
// due in timestamp order. Callbacks scheduled while advancing run too if
// they fall inside the window.
func (l *ManualLoop) Advance(d time.Duration) {
	end := l.now.Add(d)
	for l.timers.Len() > 0 {
		next := l.timers[0]
		if next.when.After(end) {
			break
		}
		heap.Pop(&l.timers)
		if next.stopped {
			continue
		}
		l.now = next.when
		next.stopped = true
		next.fn()
	}
	l.now = end
}

// Flush runs callbacks that are already due without moving the clock.
func (l *ManualLoop) Flush() {
	l.Advance(0)
}

// Pending returns the number of scheduled, unstopped callbacks.
func (l *ManualLoop) Pending() int {
	n := 0
	for _, t := range l.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

type manualTimer struct {
	when    time.Time
	seq     uint64
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].when.Equal(h[j].when) {
		return h[i].seq < h[j].seq
	}
	return h[i].when.Before(h[j].when)
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(*manualTimer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
