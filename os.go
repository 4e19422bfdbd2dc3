// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"errors"
	"image"
	"image/color"
)

// driver is the native window binding. Every method except wakeup,
// pump and poll must be called on the owning thread only; the Window
// facade guarantees that.
type driver interface {
	// State queries.
	focused() bool
	minimized() bool
	maximized() bool
	resizable() bool
	decorated() bool
	alwaysOnTop() bool
	title() string
	clientSize() image.Point
	// trackBounds reports the platform-defined minimum and maximum
	// window extents, consulted when the user has not overridden them.
	trackBounds() (min, max image.Point)
	// outerOffset is the difference between the outer window rect and
	// the client area (borders, title bar).
	outerOffset() image.Point

	// State transitions.
	hide()
	show()
	focus()
	requestClose()
	destroy()
	beginDrag()
	beginResize(dir resizeDir)
	setMinimized(enabled bool)
	setMaximized(enabled bool)
	setResizable(enabled bool)
	setDecorated(enabled bool)
	setAlwaysOnTop(enabled bool)
	setTitle(title string)
	// setOuterSize resizes the window rect without moving it or
	// changing its z-order.
	setOuterSize(sz image.Point)

	// wakeup posts a non-coalescing message into the owning thread's
	// queue so a blocked pump revisits the pending-call queue. Safe to
	// call from any thread.
	wakeup()
	// pump waits for and dispatches the next queued message. It
	// reports false once the quit message has been observed.
	pump() bool
	// poll dispatches at most one pending message without blocking and
	// reports whether one was processed.
	poll() bool
}

// ErrUnsupported is returned by New on platforms without a native
// binding.
var ErrUnsupported = errors.New("casement: no window backend for this platform")

// Edge is a bitset of window borders, used to anchor an interactive
// resize. Compound corners combine two adjacent edges.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// resizeDir is the canonical directional code for an interactive
// resize. The values follow the system-command order of the original
// window manager contract and must stay stable.
type resizeDir uint8

const (
	sizeLeft resizeDir = iota + 1
	sizeRight
	sizeTop
	sizeTopLeft
	sizeTopRight
	sizeBottom
	sizeBottomLeft
	sizeBottomRight
)

// resizeDirFor maps an edge combination to its directional code. The
// second return is false for combinations that have no corresponding
// resize direction, such as EdgeLeft|EdgeRight; those requests are
// dropped rather than sent to the platform.
func resizeDirFor(e Edge) (resizeDir, bool) {
	switch e {
	case EdgeLeft:
		return sizeLeft, true
	case EdgeRight:
		return sizeRight, true
	case EdgeTop:
		return sizeTop, true
	case EdgeTop | EdgeLeft:
		return sizeTopLeft, true
	case EdgeTop | EdgeRight:
		return sizeTopRight, true
	case EdgeBottom:
		return sizeBottom, true
	case EdgeBottom | EdgeLeft:
		return sizeBottomLeft, true
	case EdgeBottom | EdgeRight:
		return sizeBottomRight, true
	}
	return 0, false
}

// config is the initial window state assembled from Options.
type config struct {
	title      string
	size       image.Point
	minSize    *image.Point
	maxSize    *image.Point
	resizable  bool
	decorated  bool
	onTop      bool
	hidden     bool
	background color.NRGBA
}

func defaultConfig() config {
	return config{
		title:      "casement",
		size:       image.Pt(800, 600),
		resizable:  true,
		decorated:  true,
		background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

func (c *config) apply(options []Option) {
	for _, o := range options {
		o(c)
	}
}

// Option configures a window at construction time.
type Option func(*config)

// Title sets the initial window title.
func Title(t string) Option {
	return func(c *config) { c.title = t }
}

// Size sets the initial client-area size.
func Size(width, height int) Option {
	return func(c *config) { c.size = image.Pt(width, height) }
}

// MinSize overrides the platform minimum window size.
func MinSize(width, height int) Option {
	return func(c *config) {
		p := image.Pt(width, height)
		c.minSize = &p
	}
}

// MaxSize overrides the platform maximum window size.
func MaxSize(width, height int) Option {
	return func(c *config) {
		p := image.Pt(width, height)
		c.maxSize = &p
	}
}

// Resizable controls whether the window can be resized interactively.
func Resizable(enabled bool) Option {
	return func(c *config) { c.resizable = enabled }
}

// Decorated controls whether the platform draws the title bar and
// borders.
func Decorated(enabled bool) Option {
	return func(c *config) { c.decorated = enabled }
}

// AlwaysOnTop keeps the window above regular windows.
func AlwaysOnTop(enabled bool) Option {
	return func(c *config) { c.onTop = enabled }
}

// Hidden creates the window without showing it. Call Show later.
func Hidden() Option {
	return func(c *config) { c.hidden = true }
}

// Background sets the initial background color.
func Background(col color.NRGBA) Option {
	return func(c *config) { c.background = col }
}
