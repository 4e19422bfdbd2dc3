// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

// Package w32 wraps the small slice of the Win32 user interface API
// the window binding needs. Functions return Go errors where the
// underlying call reports failure through the last-error slot.
package w32

import (
	"fmt"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

type WndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     syscall.Handle
	HIcon         syscall.Handle
	HCursor       syscall.Handle
	HbrBackground syscall.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       syscall.Handle
}

type Msg struct {
	Hwnd    syscall.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

type Point struct {
	X, Y int32
}

type Rect struct {
	Left, Top, Right, Bottom int32
}

type WindowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    Point
	PtMaxPosition    Point
	RcNormalPosition Rect
	RcDevice         Rect
}

type MinMaxInfo struct {
	PtReserved     Point
	PtMaxSize      Point
	PtMaxPosition  Point
	PtMinTrackSize Point
	PtMaxTrackSize Point
}

const (
	WS_CAPTION     = 0x00C00000
	WS_MAXIMIZEBOX = 0x00010000
	WS_MINIMIZEBOX = 0x00020000
	WS_SYSMENU     = 0x00080000
	WS_THICKFRAME  = 0x00040000

	WS_CLIPCHILDREN     = 0x02000000
	WS_CLIPSIBLINGS     = 0x04000000
	WS_OVERLAPPEDWINDOW = 0x00CF0000

	WS_EX_APPWINDOW  = 0x00040000
	WS_EX_TOPMOST    = 0x00000008
	WS_EX_WINDOWEDGE = 0x00000100

	GWL_STYLE   = ^(uintptr(16) - 1) // -16
	GWL_EXSTYLE = ^(uintptr(20) - 1) // -20

	CW_USEDEFAULT = -0x80000000

	SW_HIDE          = 0
	SW_SHOW          = 5
	SW_MINIMIZE      = 6
	SW_RESTORE       = 9
	SW_MAXIMIZE      = 3
	SW_SHOWMAXIMIZED = 3

	WM_CLOSE         = 0x0010
	WM_DESTROY       = 0x0002
	WM_GETMINMAXINFO = 0x0024
	WM_NCACTIVATE    = 0x0086
	WM_QUIT          = 0x0012
	WM_SIZE          = 0x0005
	WM_SYSCOMMAND    = 0x0112
	WM_USER          = 0x0400

	SIZE_RESTORED  = 0
	SIZE_MINIMIZED = 1
	SIZE_MAXIMIZED = 2

	// System commands for interactive move/resize. The low bits of
	// SC_SIZE select the edge; SC_DRAGMOVE is undocumented.
	SC_SIZE     = 0xF000
	SC_DRAGMOVE = 0xF012

	SWP_NOMOVE   = 0x0002
	SWP_NOSIZE   = 0x0001
	SWP_NOZORDER = 0x0004

	HWND_TOPMOST   = ^(uintptr(1) - 1) // -1
	HWND_NOTOPMOST = ^(uintptr(2) - 1) // -2

	SM_CXMINTRACK = 34
	SM_CYMINTRACK = 35
	SM_CXMAXTRACK = 59
	SM_CYMAXTRACK = 60

	PM_REMOVE = 0x0001
)

var (
	kernel32          = syscall.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	user32                 = syscall.NewLazySystemDLL("user32.dll")
	_CreateWindowExW       = user32.NewProc("CreateWindowExW")
	_DefWindowProcW        = user32.NewProc("DefWindowProcW")
	_DestroyWindow         = user32.NewProc("DestroyWindow")
	_DispatchMessageW      = user32.NewProc("DispatchMessageW")
	_GetClientRect         = user32.NewProc("GetClientRect")
	_GetForegroundWindow   = user32.NewProc("GetForegroundWindow")
	_GetMessageW           = user32.NewProc("GetMessageW")
	_GetSystemMetrics      = user32.NewProc("GetSystemMetrics")
	_GetWindowLongW        = user32.NewProc("GetWindowLongW")
	_GetWindowPlacement    = user32.NewProc("GetWindowPlacement")
	_GetWindowRect         = user32.NewProc("GetWindowRect")
	_GetWindowTextW        = user32.NewProc("GetWindowTextW")
	_GetWindowTextLengthW  = user32.NewProc("GetWindowTextLengthW")
	_IsIconic              = user32.NewProc("IsIconic")
	_PeekMessageW          = user32.NewProc("PeekMessageW")
	_PostMessageW          = user32.NewProc("PostMessageW")
	_PostQuitMessage       = user32.NewProc("PostQuitMessage")
	_RegisterClassExW      = user32.NewProc("RegisterClassExW")
	_RegisterWindowMessage = user32.NewProc("RegisterWindowMessageW")
	_ReleaseCapture        = user32.NewProc("ReleaseCapture")
	_SetForegroundWindow   = user32.NewProc("SetForegroundWindow")
	_SetWindowLongW        = user32.NewProc("SetWindowLongW")
	_SetWindowPos          = user32.NewProc("SetWindowPos")
	_SetWindowTextW        = user32.NewProc("SetWindowTextW")
	_ShowWindow            = user32.NewProc("ShowWindow")
	_TranslateMessage      = user32.NewProc("TranslateMessage")
)

func GetModuleHandle() (syscall.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(uintptr(0))
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandleW: %v", err)
	}
	return syscall.Handle(h), nil
}

func RegisterClassEx(cls *WndClassEx) (uint16, error) {
	a, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(cls)))
	if a == 0 {
		return 0, fmt.Errorf("RegisterClassExW: %v", err)
	}
	return uint16(a), nil
}

func RegisterWindowMessage(name string) (uint32, error) {
	m, _, err := _RegisterWindowMessage.Call(uintptr(unsafe.Pointer(syscall.StringToUTF16Ptr(name))))
	if m == 0 {
		return 0, fmt.Errorf("RegisterWindowMessageW: %v", err)
	}
	return uint32(m), nil
}

func CreateWindowEx(exStyle uint32, lpClassName uint16, lpWindowName string, style uint32, x, y, w, h int32, parent, menu, instance syscall.Handle) (syscall.Handle, error) {
	hwnd, _, err := _CreateWindowExW.Call(
		uintptr(exStyle),
		uintptr(lpClassName),
		uintptr(unsafe.Pointer(syscall.StringToUTF16Ptr(lpWindowName))),
		uintptr(style),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		uintptr(parent),
		uintptr(menu),
		uintptr(instance),
		0)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %v", err)
	}
	return syscall.Handle(hwnd), nil
}

func DefWindowProc(hwnd syscall.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := _DefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

func DestroyWindow(hwnd syscall.Handle) {
	_DestroyWindow.Call(uintptr(hwnd))
}

func GetMessage(m *Msg, hwnd syscall.Handle, msgFilterMin, msgFilterMax uint32) int32 {
	r, _, _ := _GetMessageW.Call(
		uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(msgFilterMin),
		uintptr(msgFilterMax))
	return int32(r)
}

func PeekMessage(m *Msg, hwnd syscall.Handle, msgFilterMin, msgFilterMax, removeMsg uint32) bool {
	r, _, _ := _PeekMessageW.Call(
		uintptr(unsafe.Pointer(m)),
		uintptr(hwnd),
		uintptr(msgFilterMin),
		uintptr(msgFilterMax),
		uintptr(removeMsg))
	return r != 0
}

func TranslateMessage(m *Msg) {
	_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func DispatchMessage(m *Msg) {
	_DispatchMessageW.Call(uintptr(unsafe.Pointer(m)))
}

func PostMessage(hwnd syscall.Handle, msg uint32, wparam, lparam uintptr) error {
	r, _, err := _PostMessageW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	if r == 0 {
		return fmt.Errorf("PostMessageW: %v", err)
	}
	return nil
}

func PostQuitMessage(exitCode uintptr) {
	_PostQuitMessage.Call(exitCode)
}

func GetWindowLong(hwnd syscall.Handle, index uintptr) uint32 {
	r, _, _ := _GetWindowLongW.Call(uintptr(hwnd), index)
	return uint32(r)
}

func SetWindowLong(hwnd syscall.Handle, index uintptr, style uint32) {
	_SetWindowLongW.Call(uintptr(hwnd), index, uintptr(style))
}

func GetWindowPlacement(hwnd syscall.Handle) *WindowPlacement {
	var p WindowPlacement
	p.Length = uint32(unsafe.Sizeof(p))
	_GetWindowPlacement.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&p)))
	return &p
}

func (p *WindowPlacement) IsMaximized() bool {
	return p.ShowCmd == SW_SHOWMAXIMIZED
}

func GetWindowRect(hwnd syscall.Handle) Rect {
	var r Rect
	_GetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	return r
}

func GetClientRect(hwnd syscall.Handle) Rect {
	var r Rect
	_GetClientRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	return r
}

func GetForegroundWindow() syscall.Handle {
	h, _, _ := _GetForegroundWindow.Call()
	return syscall.Handle(h)
}

func SetForegroundWindow(hwnd syscall.Handle) {
	_SetForegroundWindow.Call(uintptr(hwnd))
}

func IsIconic(hwnd syscall.Handle) bool {
	r, _, _ := _IsIconic.Call(uintptr(hwnd))
	return r != 0
}

func GetSystemMetrics(index int32) int {
	r, _, _ := _GetSystemMetrics.Call(uintptr(index))
	return int(r)
}

func GetWindowText(hwnd syscall.Handle) string {
	n, _, _ := _GetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	_GetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	// Drop the trailing NUL so comparisons against user-set titles
	// succeed.
	return syscall.UTF16ToString(buf)
}

func SetWindowText(hwnd syscall.Handle, title string) {
	_SetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(syscall.StringToUTF16Ptr(title))))
}

func SetWindowPos(hwnd syscall.Handle, after uintptr, x, y, dx, dy int32, flags uint32) {
	_SetWindowPos.Call(uintptr(hwnd), after,
		uintptr(x), uintptr(y),
		uintptr(dx), uintptr(dy),
		uintptr(flags))
}

func ShowWindow(hwnd syscall.Handle, cmdshow int32) {
	_ShowWindow.Call(uintptr(hwnd), uintptr(cmdshow))
}

func ReleaseCapture() {
	_ReleaseCapture.Call()
}
