// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"image"
	"testing"
)

// fakeDriver is an in-memory window backend. Its message queue is a
// channel of thunks pumped by the owning goroutine, which stands in
// for the native event queue; state fields are only touched on the
// owning thread, mirroring the contract real backends rely on.
type fakeDriver struct {
	win *Window

	queue chan func()
	quit  bool
	// detached models the cleared native back-reference: once set,
	// translated platform events are dropped.
	detached bool

	titleText string
	outer     image.Point
	offset    image.Point
	visible   bool
	hasFocus  bool
	min       bool
	max       bool
	canSize   bool
	decor     bool
	onTop     bool

	trackMin image.Point
	trackMax image.Point

	dragCount  int
	resizeDirs []resizeDir
	titleSets  int
	closeReqs  int
}

// fakeOffset is the simulated non-client border thickness.
var fakeOffset = image.Pt(16, 39)

func newFakeWindow(t *testing.T, options ...Option) (*Window, *fakeDriver) {
	t.Helper()
	var d *fakeDriver
	w, err := newWindow(options, func(win *Window, cnf *config) (driver, error) {
		d = &fakeDriver{
			win:       win,
			queue:     make(chan func(), 128),
			titleText: cnf.title,
			offset:    fakeOffset,
			outer:     cnf.size.Add(fakeOffset),
			visible:   !cnf.hidden,
			canSize:   cnf.resizable,
			decor:     cnf.decorated,
			onTop:     cnf.onTop,
			trackMin:  image.Pt(100, 50),
			trackMax:  image.Pt(3840, 2160),
		}
		return d, nil
	})
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	return w, d
}

func (d *fakeDriver) focused() bool            { return d.hasFocus }
func (d *fakeDriver) minimized() bool          { return d.min }
func (d *fakeDriver) maximized() bool          { return d.max }
func (d *fakeDriver) resizable() bool          { return d.canSize }
func (d *fakeDriver) decorated() bool          { return d.decor }
func (d *fakeDriver) alwaysOnTop() bool        { return d.onTop }
func (d *fakeDriver) title() string            { return d.titleText }
func (d *fakeDriver) outerOffset() image.Point { return d.offset }

func (d *fakeDriver) clientSize() image.Point {
	return d.outer.Sub(d.offset)
}

func (d *fakeDriver) trackBounds() (min, max image.Point) {
	return d.trackMin, d.trackMax
}

func (d *fakeDriver) hide()  { d.visible = false }
func (d *fakeDriver) show()  { d.visible = true }
func (d *fakeDriver) focus() { d.hasFocus = true }

func (d *fakeDriver) requestClose() {
	d.closeReqs++
	if d.win.fireClose() {
		return
	}
	d.win.fireClosed()
	d.destroy()
}

func (d *fakeDriver) destroy() {
	d.detached = true
	d.quit = true
	// Unblock a pump waiting on the queue.
	select {
	case d.queue <- nil:
	default:
	}
}

func (d *fakeDriver) beginDrag() { d.dragCount++ }

func (d *fakeDriver) beginResize(dir resizeDir) {
	d.resizeDirs = append(d.resizeDirs, dir)
}

func (d *fakeDriver) setMinimized(enabled bool) {
	if d.min == enabled {
		return
	}
	d.min = enabled
	d.win.fireMinimize(enabled)
}

func (d *fakeDriver) setMaximized(enabled bool) {
	if d.max == enabled {
		return
	}
	d.max = enabled
	d.win.fireMaximize(enabled)
}

func (d *fakeDriver) setResizable(enabled bool)   { d.canSize = enabled }
func (d *fakeDriver) setDecorated(enabled bool)   { d.decor = enabled }
func (d *fakeDriver) setAlwaysOnTop(enabled bool) { d.onTop = enabled }

func (d *fakeDriver) setTitle(title string) {
	d.titleText = title
	d.titleSets++
}

func (d *fakeDriver) setOuterSize(sz image.Point) {
	old := d.clientSize()
	d.outer = sz
	if now := d.clientSize(); now != old {
		d.win.fireResize(now.X, now.Y)
	}
}

func (d *fakeDriver) wakeup() {
	d.queue <- func() { d.win.loop.flush() }
}

func (d *fakeDriver) pump() bool {
	if d.quit {
		return false
	}
	if f := <-d.queue; f != nil {
		f()
	}
	return !d.quit
}

func (d *fakeDriver) poll() bool {
	if d.quit {
		return false
	}
	select {
	case f := <-d.queue:
		if f != nil {
			f()
		}
		return true
	default:
		return false
	}
}

// inject queues a synthetic platform event, the way the native queue
// would deliver one. Dropped once the driver is detached.
func (d *fakeDriver) inject(ev func()) {
	d.queue <- func() {
		if d.detached {
			return
		}
		ev()
	}
}

func (d *fakeDriver) injectResize(width, height int) {
	d.inject(func() {
		d.outer = image.Pt(width, height).Add(d.offset)
		d.win.fireResize(width, height)
	})
}

func (d *fakeDriver) injectFocus(focused bool) {
	d.inject(func() {
		d.hasFocus = focused
		d.win.fireFocus(focused)
	})
}
