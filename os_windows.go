// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package casement

import (
	"image"
	"sync"
	"sync/atomic"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"github.com/casement/casement/internal/w32"
)

// win32Window binds a Window to its HWND. All methods run on the
// owning thread except wakeup.
type win32Window struct {
	hwnd syscall.Handle
	win  *Window

	// lastState remembers the previous WM_SIZE state so a restore can
	// be reported as the end of a minimize or maximize.
	lastState uintptr
}

// winMap maps HWNDs to their *win32Window. An entry is removed before
// DestroyWindow, so callbacks racing destruction find nothing and fall
// through to DefWindowProc.
var winMap sync.Map

// instances counts live windows in the process; the quit message is
// posted when the last one is destroyed.
var instances atomic.Int64

var resources struct {
	once sync.Once
	err  error
	// handle is the module handle from GetModuleHandle.
	handle syscall.Handle
	// class is the window class from RegisterClassEx.
	class uint16
	// safeCall is the registered message that wakes a pump blocked in
	// GetMessage so it drains pending cross-thread calls.
	safeCall uint32
}

// initResources registers the window class. Process-wide, exactly
// once.
func initResources() error {
	hInst, err := w32.GetModuleHandle()
	if err != nil {
		return err
	}
	resources.handle = hInst
	wcls := w32.WndClassEx{
		CbSize:        uint32(unsafe.Sizeof(w32.WndClassEx{})),
		LpfnWndProc:   syscall.NewCallback(windowProc),
		HInstance:     hInst,
		LpszClassName: syscall.StringToUTF16Ptr("CasementWindow"),
	}
	cls, err := w32.RegisterClassEx(&wcls)
	if err != nil {
		return err
	}
	resources.class = cls
	msg, err := w32.RegisterWindowMessage("casement-safe-call")
	if err != nil {
		return err
	}
	resources.safeCall = msg
	return nil
}

func newOSWindow(win *Window, cnf *config) (driver, error) {
	resources.once.Do(func() {
		resources.err = initResources()
	})
	if resources.err != nil {
		return nil, resources.err
	}
	style := uint32(w32.WS_OVERLAPPEDWINDOW | w32.WS_CLIPSIBLINGS | w32.WS_CLIPCHILDREN)
	exStyle := uint32(w32.WS_EX_APPWINDOW | w32.WS_EX_WINDOWEDGE)
	hwnd, err := w32.CreateWindowEx(exStyle,
		resources.class,
		cnf.title,
		style,
		w32.CW_USEDEFAULT, w32.CW_USEDEFAULT,
		w32.CW_USEDEFAULT, w32.CW_USEDEFAULT,
		0, 0, resources.handle)
	if err != nil {
		return nil, err
	}
	w := &win32Window{hwnd: hwnd, win: win}
	winMap.Store(hwnd, w)
	instances.Add(1)

	w.setOuterSize(cnf.size.Add(w.outerOffset()))
	if !cnf.resizable {
		w.setResizable(false)
	}
	if !cnf.decorated {
		w.setDecorated(false)
	}
	if cnf.onTop {
		w.setAlwaysOnTop(true)
	}
	if !cnf.hidden {
		w.show()
		w.focus()
	}
	return w, nil
}

func windowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	def := func() uintptr {
		return w32.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	entry, exists := winMap.Load(hwnd)
	if !exists {
		// Detached or not yet registered.
		return def()
	}
	w := entry.(*win32Window)

	if msg == resources.safeCall {
		w.win.loop.flush()
		return def()
	}

	switch msg {
	case w32.WM_NCACTIVATE:
		w.win.fireFocus(wParam != 0)
	case w32.WM_GETMINMAXINFO:
		// Delivered synchronously during the construction-time
		// SetWindowPos, before the facade has its driver; resolve the
		// limits from the cached overrides and our own bounds.
		info := (*w32.MinMaxInfo)(unsafe.Pointer(lParam))
		min, max := w.trackBounds()
		minOv, maxOv := w.win.sizeOverrides()
		if minOv != nil {
			min = *minOv
		}
		if maxOv != nil {
			max = *maxOv
		}
		info.PtMinTrackSize = w32.Point{X: int32(min.X), Y: int32(min.Y)}
		info.PtMaxTrackSize = w32.Point{X: int32(max.X), Y: int32(max.Y)}
	case w32.WM_SIZE:
		switch wParam {
		case w32.SIZE_MAXIMIZED:
			w.lastState = w32.SIZE_MAXIMIZED
			w.win.fireMaximize(true)
		case w32.SIZE_MINIMIZED:
			w.lastState = w32.SIZE_MINIMIZED
			w.win.fireMinimize(true)
		case w32.SIZE_RESTORED:
			switch w.lastState {
			case w32.SIZE_MAXIMIZED:
				w.win.fireMaximize(false)
			case w32.SIZE_MINIMIZED:
				w.win.fireMinimize(false)
			}
			w.lastState = w32.SIZE_RESTORED
		}
		sz := w.clientSize()
		w.win.fireResize(sz.X, sz.Y)
	case w32.WM_CLOSE, w32.WM_DESTROY:
		if w.win.fireClose() {
			// A listener vetoed the close request.
			return 0
		}
		w.win.fireClosed()
		if _, loaded := winMap.LoadAndDelete(hwnd); loaded {
			if instances.Add(-1) == 0 {
				w32.PostQuitMessage(0)
			}
		}
	}

	return def()
}

func (w *win32Window) focused() bool {
	return w.hwnd == w32.GetForegroundWindow()
}

func (w *win32Window) minimized() bool {
	return w32.IsIconic(w.hwnd)
}

func (w *win32Window) maximized() bool {
	return w32.GetWindowPlacement(w.hwnd).IsMaximized()
}

const resizableBits = w32.WS_THICKFRAME | w32.WS_MINIMIZEBOX | w32.WS_MAXIMIZEBOX

const decorationBits = w32.WS_CAPTION | w32.WS_THICKFRAME | w32.WS_MINIMIZEBOX |
	w32.WS_MAXIMIZEBOX | w32.WS_SYSMENU

func (w *win32Window) resizable() bool {
	return w32.GetWindowLong(w.hwnd, w32.GWL_STYLE)&resizableBits != 0
}

func (w *win32Window) decorated() bool {
	return w32.GetWindowLong(w.hwnd, w32.GWL_STYLE)&decorationBits != 0
}

func (w *win32Window) alwaysOnTop() bool {
	return w32.GetWindowLong(w.hwnd, w32.GWL_EXSTYLE)&w32.WS_EX_TOPMOST != 0
}

func (w *win32Window) title() string {
	return w32.GetWindowText(w.hwnd)
}

func (w *win32Window) clientSize() image.Point {
	r := w32.GetClientRect(w.hwnd)
	return image.Pt(int(r.Right-r.Left), int(r.Bottom-r.Top))
}

func (w *win32Window) trackBounds() (min, max image.Point) {
	min = image.Pt(w32.GetSystemMetrics(w32.SM_CXMINTRACK), w32.GetSystemMetrics(w32.SM_CYMINTRACK))
	max = image.Pt(w32.GetSystemMetrics(w32.SM_CXMAXTRACK), w32.GetSystemMetrics(w32.SM_CYMAXTRACK))
	return min, max
}

func (w *win32Window) outerOffset() image.Point {
	wr := w32.GetWindowRect(w.hwnd)
	cr := w32.GetClientRect(w.hwnd)
	return image.Pt(
		int(wr.Right-wr.Left-cr.Right),
		int(wr.Bottom-wr.Top-cr.Bottom),
	)
}

func (w *win32Window) hide() {
	w32.ShowWindow(w.hwnd, w32.SW_HIDE)
}

func (w *win32Window) show() {
	w32.ShowWindow(w.hwnd, w32.SW_SHOW)
}

func (w *win32Window) focus() {
	w32.SetForegroundWindow(w.hwnd)
}

func (w *win32Window) requestClose() {
	w32.PostMessage(w.hwnd, w32.WM_CLOSE, 0, 0)
}

func (w *win32Window) destroy() {
	// Detach first: callbacks delivered during DestroyWindow find no
	// map entry and no-op.
	if _, loaded := winMap.LoadAndDelete(w.hwnd); loaded {
		if instances.Add(-1) == 0 {
			w32.PostQuitMessage(0)
		}
	}
	w32.DestroyWindow(w.hwnd)
}

func (w *win32Window) beginDrag() {
	w32.ReleaseCapture()
	w32.PostMessage(w.hwnd, w32.WM_SYSCOMMAND, w32.SC_DRAGMOVE, 0)
}

func (w *win32Window) beginResize(dir resizeDir) {
	w32.ReleaseCapture()
	w32.PostMessage(w.hwnd, w32.WM_SYSCOMMAND, uintptr(w32.SC_SIZE)+uintptr(dir), 0)
}

func (w *win32Window) setMinimized(enabled bool) {
	if enabled {
		w32.ShowWindow(w.hwnd, w32.SW_MINIMIZE)
	} else {
		w32.ShowWindow(w.hwnd, w32.SW_RESTORE)
	}
}

func (w *win32Window) setMaximized(enabled bool) {
	if enabled {
		w32.ShowWindow(w.hwnd, w32.SW_MAXIMIZE)
	} else {
		w32.ShowWindow(w.hwnd, w32.SW_RESTORE)
	}
}

// setStyleBits sets or clears a full style-bit group in a single
// write, leaving the remaining bits untouched.
func (w *win32Window) setStyleBits(bits uint32, enabled bool) {
	style := w32.GetWindowLong(w.hwnd, w32.GWL_STYLE)
	if enabled {
		style |= bits
	} else {
		style &^= bits
	}
	w32.SetWindowLong(w.hwnd, w32.GWL_STYLE, style)
}

func (w *win32Window) setResizable(enabled bool) {
	w.setStyleBits(resizableBits, enabled)
}

func (w *win32Window) setDecorated(enabled bool) {
	w.setStyleBits(w32.WS_CAPTION|w32.WS_MINIMIZEBOX|w32.WS_MAXIMIZEBOX|w32.WS_SYSMENU, enabled)
}

func (w *win32Window) setAlwaysOnTop(enabled bool) {
	after := uintptr(w32.HWND_NOTOPMOST)
	if enabled {
		after = w32.HWND_TOPMOST
	}
	w32.SetWindowPos(w.hwnd, after, 0, 0, 0, 0, w32.SWP_NOMOVE|w32.SWP_NOSIZE)
}

func (w *win32Window) setTitle(title string) {
	w32.SetWindowText(w.hwnd, title)
}

func (w *win32Window) setOuterSize(sz image.Point) {
	w32.SetWindowPos(w.hwnd, 0, 0, 0, int32(sz.X), int32(sz.Y),
		w32.SWP_NOMOVE|w32.SWP_NOZORDER)
}

func (w *win32Window) wakeup() {
	w32.PostMessage(w.hwnd, resources.safeCall, 0, 0)
}

func (w *win32Window) pump() bool {
	var msg w32.Msg
	switch w32.GetMessage(&msg, 0, 0, 0) {
	case -1:
		// The queue is unusable; treat it like quit.
		return false
	case 0:
		// WM_QUIT.
		return false
	}
	w32.TranslateMessage(&msg)
	w32.DispatchMessage(&msg)
	return true
}

func (w *win32Window) poll() bool {
	var msg w32.Msg
	if !w32.PeekMessage(&msg, 0, 0, 0, w32.PM_REMOVE) {
		return false
	}
	if msg.Message == w32.WM_QUIT {
		return false
	}
	w32.TranslateMessage(&msg)
	w32.DispatchMessage(&msg)
	return true
}
