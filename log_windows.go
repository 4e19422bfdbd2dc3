// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows

package casement

import (
	"log"
	"log/slog"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

// debugWriter forwards log output to an attached debugger. It stands in
// for stderr in processes built for the windows subsystem, which have
// no console.
type debugWriter struct{}

var outputDebugStringW = syscall.NewLazySystemDLL("kernel32").NewProc("OutputDebugStringW")

func init() {
	if syscall.Stderr != 0 {
		return
	}
	var w debugWriter
	// DebugView adds its own timestamps; keep only the message.
	log.SetFlags(log.Flags() &^ log.LstdFlags)
	log.SetOutput(w)
	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
}

func (debugWriter) Write(buf []byte) (int, error) {
	p, err := syscall.UTF16PtrFromString(string(buf))
	if err != nil {
		return 0, err
	}
	outputDebugStringW.Call(uintptr(unsafe.Pointer(p)))
	return len(buf), nil
}
