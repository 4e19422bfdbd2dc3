// SPDX-License-Identifier: Unlicense OR MIT

package casement

import "sync"

// EventKind is one member of the closed set of window lifecycle
// categories a listener can subscribe to.
type EventKind uint8

const (
	// EventResize fires with the new client-area size.
	EventResize EventKind = iota
	// EventClose fires when destruction of the window has been
	// requested. Any listener returning true vetoes it.
	EventClose
	// EventClosed fires once the window is going away for good.
	EventClosed
	// EventFocus fires when the window gains or loses focus.
	EventFocus
	// EventMinimize fires when the window is minimized or restored.
	EventMinimize
	// EventMaximize fires when the window is maximized or restored.
	EventMaximize
)

// handler is a single subscription within a handlerList.
type handler[F any] struct {
	id   uint64
	once bool
	fn   F
}

// handlerList is the per-kind subscriber registry. Ids are assigned
// monotonically and are unique within the list; dispatch order is
// insertion order. All methods are safe for concurrent use, though
// dispatch itself only ever happens on the owning thread.
type handlerList[F any] struct {
	mu   sync.Mutex
	next uint64
	subs []handler[F]
}

func (l *handlerList[F]) add(fn F, once bool) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.subs = append(l.subs, handler[F]{id: id, once: once, fn: fn})
	return id
}

// remove deletes the subscription with the given id. Absent ids are a
// no-op.
func (l *handlerList[F]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, h := range l.subs {
		if h.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}

func (l *handlerList[F]) clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = nil
}

func (l *handlerList[F]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

// each invokes call for every live subscription, in insertion order.
// The list is snapshotted first, so callbacks are free to add or remove
// subscriptions of the same kind mid-dispatch without skipping or
// double-invoking the rest of the pass. A one-shot entry is removed
// from the live list before its callback runs, so it is gone even if
// the callback panics.
func (l *handlerList[F]) each(call func(F)) {
	l.mu.Lock()
	snapshot := make([]handler[F], len(l.subs))
	copy(snapshot, l.subs)
	l.mu.Unlock()

	for _, h := range snapshot {
		if h.once {
			l.remove(h.id)
		}
		call(h.fn)
	}
}

// windowEvents holds one registry per event kind. Payload types differ
// per kind, matching the listener signatures on Window.
type windowEvents struct {
	resize   handlerList[func(width, height int)]
	close    handlerList[func() bool]
	closed   handlerList[func()]
	focus    handlerList[func(bool)]
	minimize handlerList[func(bool)]
	maximize handlerList[func(bool)]
}

// OnResize registers fn for client-area size changes and returns its
// subscriber id.
func (w *Window) OnResize(fn func(width, height int)) uint64 {
	return w.events.resize.add(fn, false)
}

// OnceResize registers fn to fire for the next size change only.
func (w *Window) OnceResize(fn func(width, height int)) {
	w.events.resize.add(fn, true)
}

// OnClose registers fn for close requests. Returning true prevents the
// window from closing.
func (w *Window) OnClose(fn func() bool) uint64 {
	return w.events.close.add(fn, false)
}

// OnceClose registers fn for the next close request only.
func (w *Window) OnceClose(fn func() bool) {
	w.events.close.add(fn, true)
}

// OnClosed registers fn to fire when the window is destroyed.
func (w *Window) OnClosed(fn func()) uint64 {
	return w.events.closed.add(fn, false)
}

// OnceClosed registers fn to fire once when the window is destroyed.
func (w *Window) OnceClosed(fn func()) {
	w.events.closed.add(fn, true)
}

// OnFocus registers fn for focus changes.
func (w *Window) OnFocus(fn func(focused bool)) uint64 {
	return w.events.focus.add(fn, false)
}

// OnceFocus registers fn for the next focus change only.
func (w *Window) OnceFocus(fn func(focused bool)) {
	w.events.focus.add(fn, true)
}

// OnMinimize registers fn, invoked with true when the window is
// minimized and false when it is restored.
func (w *Window) OnMinimize(fn func(minimized bool)) uint64 {
	return w.events.minimize.add(fn, false)
}

// OnceMinimize registers fn for the next minimize transition only.
func (w *Window) OnceMinimize(fn func(minimized bool)) {
	w.events.minimize.add(fn, true)
}

// OnMaximize registers fn, invoked with true when the window is
// maximized and false when it is restored.
func (w *Window) OnMaximize(fn func(maximized bool)) uint64 {
	return w.events.maximize.add(fn, false)
}

// OnceMaximize registers fn for the next maximize transition only.
func (w *Window) OnceMaximize(fn func(maximized bool)) {
	w.events.maximize.add(fn, true)
}

// Remove deletes the subscription id of the given kind. Unknown ids
// are ignored.
func (w *Window) Remove(kind EventKind, id uint64) {
	switch kind {
	case EventResize:
		w.events.resize.remove(id)
	case EventClose:
		w.events.close.remove(id)
	case EventClosed:
		w.events.closed.remove(id)
	case EventFocus:
		w.events.focus.remove(id)
	case EventMinimize:
		w.events.minimize.remove(id)
	case EventMaximize:
		w.events.maximize.remove(id)
	}
}

// Clear deletes every subscription of the given kind.
func (w *Window) Clear(kind EventKind) {
	switch kind {
	case EventResize:
		w.events.resize.clear()
	case EventClose:
		w.events.close.clear()
	case EventClosed:
		w.events.closed.clear()
	case EventFocus:
		w.events.focus.clear()
	case EventMinimize:
		w.events.minimize.clear()
	case EventMaximize:
		w.events.maximize.clear()
	}
}

// clearAll drops every subscription of every kind. Called on
// destruction.
func (e *windowEvents) clearAll() {
	e.resize.clear()
	e.close.clear()
	e.closed.clear()
	e.focus.clear()
	e.minimize.clear()
	e.maximize.clear()
}

// The fire* helpers below are invoked by the platform bindings, on the
// owning thread, as translated native callbacks.

func (w *Window) fireResize(width, height int) {
	w.events.resize.each(func(fn func(int, int)) { fn(width, height) })
}

// fireClose reports whether any listener vetoed the close request.
func (w *Window) fireClose() (prevent bool) {
	w.events.close.each(func(fn func() bool) {
		if fn() {
			prevent = true
		}
	})
	return prevent
}

func (w *Window) fireClosed() {
	w.events.closed.each(func(fn func()) { fn() })
}

func (w *Window) fireFocus(focused bool) {
	w.events.focus.each(func(fn func(bool)) { fn(focused) })
}

func (w *Window) fireMinimize(minimized bool) {
	w.events.minimize.each(func(fn func(bool)) { fn(minimized) })
}

func (w *Window) fireMaximize(maximized bool) {
	w.events.maximize.each(func(fn func(bool)) { fn(maximized) })
}
