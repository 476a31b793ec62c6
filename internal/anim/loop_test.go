package anim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// chanPoster runs posted functions on the test goroutine.
type chanPoster chan func()

func (c chanPoster) post(fn func()) { c <- fn }

func TestDispatchLoop_PostsCallbacks(t *testing.T) {
	ch := make(chanPoster, 4)
	loop := NewDispatchLoop(ch.post)

	ran := false
	loop.AfterFunc(0, func() { ran = true })
	assert.False(t, ran)

	fn := <-ch
	fn()
	assert.True(t, ran)
}

func TestDispatchLoop_StopBeforeRun(t *testing.T) {
	ch := make(chanPoster, 4)
	loop := NewDispatchLoop(ch.post)

	ran := false
	timer := loop.AfterFunc(0, func() { ran = true })
	assert.True(t, timer.Stop())

	// The timer may already have posted; the posted function must not run fn.
	select {
	case fn := <-ch:
		fn()
	case <-time.After(20 * time.Millisecond):
	}
	assert.False(t, ran)
	assert.False(t, timer.Stop())
}

func TestDispatchLoop_ZeroDelayNeverPostsInline(t *testing.T) {
	// An unbuffered poster blocks until the loop reads it, like a program
	// whose update loop is the caller.
	ch := make(chanPoster)
	loop := NewDispatchLoop(ch.post)

	returned := make(chan struct{})
	go func() {
		loop.AfterFunc(0, func() {})
		loop.AfterFunc(-time.Second, func() {})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("AfterFunc blocked on post")
	}

	for range 2 {
		select {
		case fn := <-ch:
			fn()
		case <-time.After(2 * time.Second):
			t.Fatal("timer never posted")
		}
	}
}

func TestDispatchLoop_DelayedTimer(t *testing.T) {
	ch := make(chanPoster, 4)
	loop := NewDispatchLoop(ch.post)

	ran := false
	loop.AfterFunc(5*time.Millisecond, func() { ran = true })

	select {
	case fn := <-ch:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("timer never posted")
	}
	assert.True(t, ran)
}
