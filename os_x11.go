// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux

package casement

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// _NET_WM_MOVERESIZE directions.
const (
	netSizeTopLeft     = 0
	netSizeTop         = 1
	netSizeTopRight    = 2
	netSizeRight       = 3
	netSizeBottomRight = 4
	netSizeBottom      = 5
	netSizeBottomLeft  = 6
	netSizeLeft        = 7
	netMove            = 8
)

// x11Window binds a Window to an X11 window. Events are pumped off the
// X connection; cross-thread calls are flushed when the wakeup client
// message arrives.
type x11Window struct {
	win  *Window
	xu   *xgbutil.XUtil
	xwin *xwindow.Window

	wmProtocols xproto.Atom
	wmDelete    xproto.Atom
	// wakeAtom marks the client message that wakes a blocked pump so
	// it drains pending cross-thread calls.
	wakeAtom xproto.Atom

	// detached suppresses event translation once destruction has
	// begun; late events from the server become no-ops.
	detached bool
	quit     bool

	lastSize image.Point
	lastMin  bool
	lastMax  bool
}

func newOSWindow(win *Window, cnf *config) (driver, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("casement: connect to X server: %w", err)
	}
	xwin, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("casement: allocate window id: %w", err)
	}
	err = xwin.CreateChecked(xu.RootWin(), 0, 0, cnf.size.X, cnf.size.Y,
		xproto.CwEventMask,
		xproto.EventMaskStructureNotify|xproto.EventMaskFocusChange|xproto.EventMaskPropertyChange)
	if err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("casement: create window: %w", err)
	}

	w := &x11Window{win: win, xu: xu, xwin: xwin, lastSize: cnf.size}
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &w.wmProtocols},
		{"WM_DELETE_WINDOW", &w.wmDelete},
		{"_CASEMENT_SAFE_CALL", &w.wakeAtom},
	} {
		atom, err := xprop.Atm(xu, a.name)
		if err != nil {
			xwin.Destroy()
			xu.Conn().Close()
			return nil, fmt.Errorf("casement: intern %s: %w", a.name, err)
		}
		*a.dst = atom
	}
	if err := icccm.WmProtocolsSet(xu, xwin.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		xwin.Destroy()
		xu.Conn().Close()
		return nil, fmt.Errorf("casement: set WM_DELETE_WINDOW protocol: %w", err)
	}

	ewmh.WmNameSet(xu, xwin.Id, cnf.title)
	if !cnf.resizable {
		w.setResizable(false)
	}
	if !cnf.decorated {
		w.setDecorated(false)
	}
	if !cnf.hidden {
		xwin.Map()
	}
	if cnf.onTop {
		// Requires a mapped window on most window managers.
		w.setAlwaysOnTop(true)
	}
	return w, nil
}

func (w *x11Window) focused() bool {
	active, err := ewmh.ActiveWindowGet(w.xu)
	return err == nil && active == w.xwin.Id
}

func (w *x11Window) minimized() bool {
	state, err := icccm.WmStateGet(w.xu, w.xwin.Id)
	return err == nil && state.State == icccm.StateIconic
}

func (w *x11Window) maximized() bool {
	states, err := ewmh.WmStateGet(w.xu, w.xwin.Id)
	if err != nil {
		return false
	}
	var horz, vert bool
	for _, s := range states {
		switch s {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			horz = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			vert = true
		}
	}
	return horz && vert
}

func (w *x11Window) resizable() bool {
	hints, err := icccm.WmNormalHintsGet(w.xu, w.xwin.Id)
	if err != nil {
		return true
	}
	fixed := hints.Flags&icccm.SizeHintPMinSize != 0 &&
		hints.Flags&icccm.SizeHintPMaxSize != 0 &&
		hints.MinWidth == hints.MaxWidth &&
		hints.MinHeight == hints.MaxHeight
	return !fixed
}

func (w *x11Window) decorated() bool {
	hints, err := motif.WmHintsGet(w.xu, w.xwin.Id)
	if err != nil {
		// No motif hints set; the window manager decorates by
		// default.
		return true
	}
	return motif.Decor(hints)
}

func (w *x11Window) alwaysOnTop() bool {
	states, err := ewmh.WmStateGet(w.xu, w.xwin.Id)
	if err != nil {
		return false
	}
	for _, s := range states {
		if s == "_NET_WM_STATE_ABOVE" {
			return true
		}
	}
	return false
}

func (w *x11Window) title() string {
	name, err := ewmh.WmNameGet(w.xu, w.xwin.Id)
	if err != nil || name == "" {
		name, _ = icccm.WmNameGet(w.xu, w.xwin.Id)
	}
	return name
}

func (w *x11Window) clientSize() image.Point {
	geom, err := w.xwin.Geometry()
	if err != nil {
		return w.lastSize
	}
	return image.Pt(geom.Width(), geom.Height())
}

func (w *x11Window) trackBounds() (min, max image.Point) {
	screen := w.xu.Screen()
	return image.Pt(1, 1), image.Pt(int(screen.WidthInPixels), int(screen.HeightInPixels))
}

func (w *x11Window) outerOffset() image.Point {
	// X11 configure requests size the client area directly; frame
	// extents live outside it, so there is nothing to add.
	return image.Point{}
}

func (w *x11Window) hide() {
	w.xwin.Unmap()
}

func (w *x11Window) show() {
	w.xwin.Map()
}

func (w *x11Window) focus() {
	ewmh.ActiveWindowReq(w.xu, w.xwin.Id)
}

func (w *x11Window) requestClose() {
	// Same path a WM_DELETE_WINDOW message takes, so close listeners
	// can veto.
	w.handleCloseRequest()
}

func (w *x11Window) destroy() {
	if w.detached {
		return
	}
	w.detached = true
	w.quit = true
	w.xwin.Destroy()
	w.xu.Conn().Close()
}

func (w *x11Window) moveResize(direction int) {
	ptr, err := xproto.QueryPointer(w.xu.Conn(), w.xwin.Id).Reply()
	if err != nil {
		return
	}
	// _NET_WM_MOVERESIZE: x_root, y_root, direction, button, source.
	xproto.UngrabPointer(w.xu.Conn(), xproto.TimeCurrentTime)
	ewmh.ClientEvent(w.xu, w.xwin.Id, "_NET_WM_MOVERESIZE",
		int(ptr.RootX), int(ptr.RootY), direction, 1, 2)
}

func (w *x11Window) beginDrag() {
	w.moveResize(netMove)
}

func (w *x11Window) beginResize(dir resizeDir) {
	var direction int
	switch dir {
	case sizeLeft:
		direction = netSizeLeft
	case sizeRight:
		direction = netSizeRight
	case sizeTop:
		direction = netSizeTop
	case sizeTopLeft:
		direction = netSizeTopLeft
	case sizeTopRight:
		direction = netSizeTopRight
	case sizeBottom:
		direction = netSizeBottom
	case sizeBottomLeft:
		direction = netSizeBottomLeft
	case sizeBottomRight:
		direction = netSizeBottomRight
	default:
		return
	}
	w.moveResize(direction)
}

func (w *x11Window) setMinimized(enabled bool) {
	if enabled {
		ewmh.ClientEvent(w.xu, w.xwin.Id, "WM_CHANGE_STATE", icccm.StateIconic)
	} else {
		w.xwin.Map()
	}
}

func (w *x11Window) setMaximized(enabled bool) {
	action := ewmh.StateRemove
	if enabled {
		action = ewmh.StateAdd
	}
	ewmh.WmStateReqExtra(w.xu, w.xwin.Id, action,
		"_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT", 2)
}

func (w *x11Window) setResizable(enabled bool) {
	if !enabled {
		sz := w.clientSize()
		icccm.WmNormalHintsSet(w.xu, w.xwin.Id, &icccm.NormalHints{
			Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
			MinWidth:  uint(sz.X),
			MinHeight: uint(sz.Y),
			MaxWidth:  uint(sz.X),
			MaxHeight: uint(sz.Y),
		})
		return
	}
	icccm.WmNormalHintsSet(w.xu, w.xwin.Id, &icccm.NormalHints{})
}

func (w *x11Window) setDecorated(enabled bool) {
	decoration := uint(motif.DecorationNone)
	if enabled {
		decoration = motif.DecorationAll
	}
	motif.WmHintsSet(w.xu, w.xwin.Id, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: decoration,
	})
}

func (w *x11Window) setAlwaysOnTop(enabled bool) {
	action := ewmh.StateRemove
	if enabled {
		action = ewmh.StateAdd
	}
	ewmh.WmStateReq(w.xu, w.xwin.Id, action, "_NET_WM_STATE_ABOVE")
}

func (w *x11Window) setTitle(title string) {
	ewmh.WmNameSet(w.xu, w.xwin.Id, title)
}

func (w *x11Window) setOuterSize(sz image.Point) {
	w.xwin.Resize(sz.X, sz.Y)
}

// wakeup sends ourselves a client message. With an empty event mask the
// server delivers it to the client that created the window, waking a
// pump blocked in WaitForEvent. Safe to call from any thread: xgb
// serializes requests internally.
func (w *x11Window) wakeup() {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.xwin.Id,
		Type:   w.wakeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	xproto.SendEvent(w.xu.Conn(), false, w.xwin.Id,
		xproto.EventMaskNoEvent, string(ev.Bytes()))
}

func (w *x11Window) pump() bool {
	if w.quit {
		return false
	}
	ev, xerr := w.xu.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		// Connection gone.
		return false
	}
	if ev != nil {
		w.handle(ev)
	}
	return !w.quit
}

func (w *x11Window) poll() bool {
	if w.quit {
		return false
	}
	ev, xerr := w.xu.Conn().PollForEvent()
	if ev == nil && xerr == nil {
		return false
	}
	if ev != nil {
		w.handle(ev)
	}
	return true
}

// handleCloseRequest runs the vetoable close protocol and destroys the
// window unless a listener objected.
func (w *x11Window) handleCloseRequest() {
	if w.win.fireClose() {
		return
	}
	w.win.fireClosed()
	w.destroy()
}

// syncStates fires minimize/maximize transitions derived from property
// changes, mirroring the state tracking of the message-based backends.
func (w *x11Window) syncStates() {
	if min := w.minimized(); min != w.lastMin {
		w.lastMin = min
		w.win.fireMinimize(min)
	}
	if max := w.maximized(); max != w.lastMax {
		w.lastMax = max
		w.win.fireMaximize(max)
	}
}

func (w *x11Window) handle(ev xgb.Event) {
	if w.detached {
		return
	}
	switch e := ev.(type) {
	case xproto.ClientMessageEvent:
		switch e.Type {
		case w.wakeAtom:
			w.win.loop.flush()
		case w.wmProtocols:
			if len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == w.wmDelete {
				w.handleCloseRequest()
			}
		}
	case xproto.ConfigureNotifyEvent:
		sz := image.Pt(int(e.Width), int(e.Height))
		if sz != w.lastSize {
			w.lastSize = sz
			w.win.fireResize(sz.X, sz.Y)
		}
	case xproto.FocusInEvent:
		w.win.fireFocus(true)
	case xproto.FocusOutEvent:
		w.win.fireFocus(false)
	case xproto.PropertyNotifyEvent:
		w.syncStates()
	case xproto.UnmapNotifyEvent:
		w.syncStates()
	case xproto.MapNotifyEvent:
		w.syncStates()
	case xproto.DestroyNotifyEvent:
		if e.Window == w.xwin.Id {
			w.quit = true
		}
	}
}
