// SPDX-License-Identifier: Unlicense OR MIT

// Package gid identifies the current goroutine. The owning goroutine of
// a window stays locked to its OS thread, so comparing goroutine ids is
// equivalent to comparing creation-thread ids, without a per-platform
// syscall.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// Current returns the id of the calling goroutine as reported by the
// runtime traceback header.
func Current() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, prefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("gid: malformed traceback header: " + string(buf[:n]))
	}
	return id
}
