// SPDX-License-Identifier: Unlicense OR MIT

package casement

import "testing"

func TestHandlerListOrder(t *testing.T) {
	var l handlerList[func()]

	var got []int
	for i := 0; i < 4; i++ {
		i := i
		l.add(func() { got = append(got, i) }, false)
	}
	l.each(func(fn func()) { fn() })

	want := []int{0, 1, 2, 3}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("dispatch order = %v, want %v", got, want)
		}
	}
}

func TestHandlerListOnce(t *testing.T) {
	var l handlerList[func()]

	var calls int
	l.add(func() { calls++ }, true)

	l.each(func(fn func()) { fn() })
	l.each(func(fn func()) { fn() })

	if calls != 1 {
		t.Errorf("one-shot listener fired %d times, want 1", calls)
	}
	if l.len() != 0 {
		t.Errorf("one-shot listener still registered after dispatch")
	}
}

func TestHandlerListOnceRemovedBeforeCall(t *testing.T) {
	var l handlerList[func()]

	// The one-shot entry must already be gone when its own callback
	// observes the list.
	l.add(func() {
		if l.len() != 0 {
			t.Error("one-shot entry still live during its callback")
		}
	}, true)
	l.each(func(fn func()) { fn() })
}

func TestHandlerListRemoveUnknownID(t *testing.T) {
	var l handlerList[func()]

	var calls int
	id := l.add(func() { calls++ }, false)

	l.remove(id + 100)
	l.each(func(fn func()) { fn() })
	if calls != 1 {
		t.Fatalf("listener fired %d times after bogus remove, want 1", calls)
	}

	l.remove(id)
	l.each(func(fn func()) { fn() })
	if calls != 1 {
		t.Errorf("listener fired after being removed")
	}
}

func TestHandlerListIDsNotReused(t *testing.T) {
	var l handlerList[func()]

	a := l.add(func() {}, false)
	l.remove(a)
	b := l.add(func() {}, false)

	if a == b {
		t.Errorf("id %d reused after removal", a)
	}
}

func TestHandlerListMutationDuringDispatch(t *testing.T) {
	var l handlerList[func()]

	var got []string
	var idB uint64
	l.add(func() {
		got = append(got, "a")
		// Removing a later entry mid-pass must not skip or
		// double-invoke anyone already snapshotted.
		l.remove(idB)
		l.add(func() { got = append(got, "c") }, false)
	}, false)
	idB = l.add(func() { got = append(got, "b") }, false)

	l.each(func(fn func()) { fn() })

	// The snapshot was taken before the mutation, so b still runs this
	// pass; c only joins the next one.
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("first pass = %v, want [a b]", got)
	}

	got = nil
	l.each(func(fn func()) { fn() })
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("second pass = %v, want [a c]", got)
	}
}

func TestClearIsolatedPerKind(t *testing.T) {
	w, _ := newFakeWindow(t)
	defer w.Destroy()

	var resizes, focuses int
	w.OnResize(func(width, height int) { resizes++ })
	w.OnFocus(func(bool) { focuses++ })

	w.Clear(EventResize)

	w.fireResize(10, 10)
	w.fireFocus(true)

	if resizes != 0 {
		t.Errorf("cleared resize listener fired %d times", resizes)
	}
	if focuses != 1 {
		t.Errorf("focus listener fired %d times, want 1", focuses)
	}
}

func TestRemovePerKind(t *testing.T) {
	w, _ := newFakeWindow(t)
	defer w.Destroy()

	var a, b int
	idA := w.OnResize(func(width, height int) { a++ })
	w.OnResize(func(width, height int) { b++ })

	// Matching id under the wrong kind must not touch the listener.
	w.Remove(EventFocus, idA)
	w.fireResize(1, 1)

	w.Remove(EventResize, idA)
	w.fireResize(2, 2)

	if a != 1 {
		t.Errorf("removed listener fired %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("surviving listener fired %d times, want 2", b)
	}
}

func TestCloseVetoAllListenersRun(t *testing.T) {
	w, _ := newFakeWindow(t)
	defer w.Destroy()

	// Every close listener is consulted even after one has already
	// vetoed.
	var asked int
	w.OnClose(func() bool { asked++; return true })
	w.OnClose(func() bool { asked++; return false })
	w.OnClose(func() bool { asked++; return true })

	if !w.fireClose() {
		t.Error("close not vetoed")
	}
	if asked != 3 {
		t.Errorf("%d close listeners consulted, want 3", asked)
	}
}

func TestOnceListenersPerKind(t *testing.T) {
	w, _ := newFakeWindow(t)
	defer w.Destroy()

	var resizes, closes, focuses int
	w.OnceResize(func(width, height int) { resizes++ })
	w.OnceClose(func() bool { closes++; return false })
	w.OnceFocus(func(bool) { focuses++ })

	w.fireResize(1, 1)
	w.fireResize(2, 2)
	w.fireClose()
	w.fireClose()
	w.fireFocus(true)
	w.fireFocus(false)

	if resizes != 1 || closes != 1 || focuses != 1 {
		t.Errorf("once listeners fired resize=%d close=%d focus=%d, want 1 each",
			resizes, closes, focuses)
	}
}
