// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"image"
	"image/color"
	"runtime"
	"sync"
)

// Window is a native application window. All methods are safe to call
// from any goroutine; operations that touch native state are executed
// on the owning thread, blocking the caller until they complete.
type Window struct {
	drv  driver
	loop *eventLoop

	events windowEvents

	// mu guards the cached overrides below. They are never read or
	// written by the native layer directly; the read paths merge them
	// with platform defaults on every call.
	mu         sync.Mutex
	minSize    *image.Point
	maxSize    *image.Point
	background color.NRGBA
	bgChanged  func()
}

// New creates a native window. It must be called on the goroutine that
// will pump the window's messages with Run or Step; New locks that
// goroutine to its OS thread for the lifetime of the process.
//
// On failure no window resources remain allocated.
func New(options ...Option) (*Window, error) {
	return newWindow(options, newOSWindow)
}

func newWindow(options []Option, bind func(*Window, *config) (driver, error)) (*Window, error) {
	// Native window state must only ever be touched from the creation
	// thread, so pin the goroutine before creating anything.
	runtime.LockOSThread()

	cnf := defaultConfig()
	cnf.apply(options)

	w := &Window{loop: newEventLoop()}
	if cnf.minSize != nil {
		p := *cnf.minSize
		w.minSize = &p
	}
	if cnf.maxSize != nil {
		p := *cnf.maxSize
		w.maxSize = &p
	}
	w.background = cnf.background

	drv, err := bind(w, &cnf)
	if err != nil {
		return nil, err
	}
	w.drv = drv
	w.loop.wake = drv.wakeup
	return w, nil
}

// Focused reports whether the window currently has input focus.
func (w *Window) Focused() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Focused)
	}
	return w.drv.focused()
}

// Minimized reports whether the window is minimized.
func (w *Window) Minimized() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Minimized)
	}
	return w.drv.minimized()
}

// Maximized reports whether the window is maximized.
func (w *Window) Maximized() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Maximized)
	}
	return w.drv.maximized()
}

// Resizable reports whether the window can be resized interactively.
func (w *Window) Resizable() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Resizable)
	}
	return w.drv.resizable()
}

// Decorations reports whether the platform draws the title bar and
// borders.
func (w *Window) Decorations() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Decorations)
	}
	return w.drv.decorated()
}

// AlwaysOnTop reports whether the window stays above regular windows.
func (w *Window) AlwaysOnTop() bool {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.AlwaysOnTop)
	}
	return w.drv.alwaysOnTop()
}

// Title returns the current window title.
func (w *Window) Title() string {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Title)
	}
	return w.drv.title()
}

// Size returns the client-area size, excluding borders and title bar.
func (w *Window) Size() image.Point {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.Size)
	}
	return w.drv.clientSize()
}

// MinSize returns the user-set minimum size override, or the platform
// minimum when no override is set. The merge happens on every read.
func (w *Window) MinSize() image.Point {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.MinSize)
	}
	w.mu.Lock()
	override := w.minSize
	w.mu.Unlock()
	if override != nil {
		return *override
	}
	min, _ := w.drv.trackBounds()
	return min
}

// MaxSize returns the user-set maximum size override, or the platform
// maximum when no override is set.
func (w *Window) MaxSize() image.Point {
	if !w.loop.onThread() {
		return postSafe(w.loop, w.MaxSize)
	}
	w.mu.Lock()
	override := w.maxSize
	w.mu.Unlock()
	if override != nil {
		return *override
	}
	_, max := w.drv.trackBounds()
	return max
}

// sizeOverrides returns the cached min/max size overrides, nil where
// unset. Bindings use it instead of MinSize/MaxSize when resolving
// size limits inside platform callbacks: those can arrive during
// construction, before the facade has a driver to fall back to.
func (w *Window) sizeOverrides() (min, max *image.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minSize, w.maxSize
}

// Background returns the last background color set on the window.
func (w *Window) Background() color.NRGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.background
}

// Hide makes the window invisible.
func (w *Window) Hide() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.Hide(); return nil })
		return
	}
	w.drv.hide()
}

// Show makes the window visible.
func (w *Window) Show() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.Show(); return nil })
		return
	}
	w.drv.show()
}

// Close requests destruction of the window. Close listeners may veto
// the request; otherwise the window is destroyed and Run returns.
func (w *Window) Close() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.Close(); return nil })
		return
	}
	w.drv.requestClose()
}

// Focus brings the window to the foreground and gives it input focus.
func (w *Window) Focus() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.Focus(); return nil })
		return
	}
	w.drv.focus()
}

// StartDrag begins an interactive window move driven by the platform's
// window manager, typically called from a pointer-down handler on a
// custom title bar.
func (w *Window) StartDrag() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.StartDrag(); return nil })
		return
	}
	w.drv.beginDrag()
}

// StartResize begins an interactive resize anchored at edge. Edge
// combinations without a matching resize direction are ignored.
func (w *Window) StartResize(edge Edge) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.StartResize(edge); return nil })
		return
	}
	dir, ok := resizeDirFor(edge)
	if !ok {
		return
	}
	w.drv.beginResize(dir)
}

// SetMinimized minimizes the window when enabled is true and restores
// it otherwise.
func (w *Window) SetMinimized(enabled bool) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetMinimized(enabled); return nil })
		return
	}
	w.drv.setMinimized(enabled)
}

// SetMaximized maximizes the window when enabled is true and restores
// it otherwise.
func (w *Window) SetMaximized(enabled bool) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetMaximized(enabled); return nil })
		return
	}
	w.drv.setMaximized(enabled)
}

// SetResizable toggles the window's interactive-resize affordances.
// Unrelated style state is left untouched.
func (w *Window) SetResizable(enabled bool) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetResizable(enabled); return nil })
		return
	}
	w.drv.setResizable(enabled)
}

// SetDecorations toggles the platform title bar and borders as a unit.
func (w *Window) SetDecorations(enabled bool) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetDecorations(enabled); return nil })
		return
	}
	w.drv.setDecorated(enabled)
}

// SetAlwaysOnTop keeps the window above regular windows when enabled.
func (w *Window) SetAlwaysOnTop(enabled bool) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetAlwaysOnTop(enabled); return nil })
		return
	}
	w.drv.setAlwaysOnTop(enabled)
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetTitle(title); return nil })
		return
	}
	w.drv.setTitle(title)
}

// SetSize resizes the window so that its client area has the given
// size. The window is not moved and its z-order is unchanged.
func (w *Window) SetSize(width, height int) {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.SetSize(width, height); return nil })
		return
	}
	offset := w.drv.outerOffset()
	w.drv.setOuterSize(image.Pt(width+offset.X, height+offset.Y))
}

// SetMinSize overrides the minimum window size reported by MinSize.
// Only the cached override is written, so no marshal to the owning
// thread is needed.
func (w *Window) SetMinSize(width, height int) {
	p := image.Pt(width, height)
	w.mu.Lock()
	w.minSize = &p
	w.mu.Unlock()
}

// SetMaxSize overrides the maximum window size reported by MaxSize.
func (w *Window) SetMaxSize(width, height int) {
	p := image.Pt(width, height)
	w.mu.Lock()
	w.maxSize = &p
	w.mu.Unlock()
}

// SetBackground stores the background color and notifies the
// registered background hook, if any.
func (w *Window) SetBackground(col color.NRGBA) {
	w.mu.Lock()
	w.background = col
	changed := w.bgChanged
	w.mu.Unlock()

	if changed == nil {
		return
	}
	changed()
}

// OnBackgroundChange registers the hook invoked after SetBackground
// commits a new color. A renderer embedding the window uses this to
// schedule a repaint; leaving it unset is fine.
func (w *Window) OnBackgroundChange(fn func()) {
	w.mu.Lock()
	w.bgChanged = fn
	w.mu.Unlock()
}

// Destroy tears the window down without a close request. The native
// handle is detached from the window first, so platform callbacks
// racing destruction become no-ops.
func (w *Window) Destroy() {
	if !w.loop.onThread() {
		postSafe(w.loop, func() any { w.Destroy(); return nil })
		return
	}
	w.events.clearAll()
	w.drv.destroy()
	w.loop.die()
}
