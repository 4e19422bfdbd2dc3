// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"sync"

	"github.com/casement/casement/internal/gid"
)

// eventLoop guards the owning thread of a window. The goroutine that
// creates the window is locked to its OS thread and is the only one
// allowed to touch native window state; everyone else hands their
// operation over via postSafe and blocks for the result.
type eventLoop struct {
	// owner is the goroutine id of the owning goroutine, captured at
	// construction and immutable afterwards.
	owner uint64
	// calls holds pending cross-thread operations in FIFO order.
	calls chan pendingCall
	// wake posts a non-coalescing message into the native queue so a
	// blocked pump drains calls. Set once the driver exists.
	wake func()
	// dead is closed when the window is destroyed. Callers blocked in
	// postSafe are released with the zero result.
	dead     chan struct{}
	deadOnce sync.Once
}

// pendingCall is a unit of deferred work plus its completion signal.
// The run closure owns the result slot; done is closed after the slot
// has been written.
type pendingCall struct {
	run  func()
	done chan struct{}
}

func newEventLoop() *eventLoop {
	return &eventLoop{
		owner: gid.Current(),
		calls: make(chan pendingCall, 64),
		dead:  make(chan struct{}),
	}
}

// onThread reports whether the calling goroutine is the owning one.
// It must stay cheap: every facade operation starts with this check,
// including reentrant calls made from inside event listeners.
func (l *eventLoop) onThread() bool {
	return gid.Current() == l.owner
}

// flush executes every pending cross-thread call. Runs on the owning
// thread, triggered by the driver's wakeup message.
func (l *eventLoop) flush() {
	for {
		select {
		case c := <-l.calls:
			c.run()
			close(c.done)
		default:
			return
		}
	}
}

// die releases blocked callers and marks the loop terminated.
// Idempotent.
func (l *eventLoop) die() {
	l.deadOnce.Do(func() { close(l.dead) })
}

// postSafe runs f on the owning thread and blocks until it has
// completed, returning its result. A panic inside f is re-raised on
// the calling goroutine. Callers must have checked onThread first; on
// the owning thread f is to be called directly instead.
//
// There is no timeout: if the owning thread never pumps its queue the
// caller stays blocked. That mirrors the underlying message-loop
// model. If the window dies while waiting, the zero value of R is
// returned.
func postSafe[R any](l *eventLoop, f func() R) R {
	var (
		res      R
		panicked any
	)
	call := pendingCall{
		done: make(chan struct{}),
		run: func() {
			defer func() { panicked = recover() }()
			res = f()
		},
	}
	select {
	case l.calls <- call:
	case <-l.dead:
		var zero R
		return zero
	}
	l.wake()
	select {
	case <-call.done:
	case <-l.dead:
		// The owning thread may still be inside run, writing the
		// shared slots; hand back an independent zero value.
		var zero R
		return zero
	}
	if panicked != nil {
		panic(panicked)
	}
	return res
}

// Run pumps the owning thread's message queue until the window is
// destroyed. It must be called on the goroutine that created the
// window.
func (w *Window) Run() {
	if !w.loop.onThread() {
		panic("casement: Run called off the owning thread")
	}
	for w.drv.pump() {
	}
	w.loop.die()
}

// Step dispatches at most one pending message and returns immediately,
// reporting whether a message was processed. It is the integration
// point for embedding the window inside a host-controlled loop, and
// must be called on the goroutine that created the window.
func (w *Window) Step() bool {
	if !w.loop.onThread() {
		panic("casement: Step called off the owning thread")
	}
	return w.drv.poll()
}
