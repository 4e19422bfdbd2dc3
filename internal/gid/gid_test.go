// SPDX-License-Identifier: Unlicense OR MIT

package gid

import (
	"runtime"
	"testing"
)

func TestCurrentIsStable(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	id := Current()
	if id == 0 {
		t.Fatal("zero goroutine id")
	}
	for i := 0; i < 100; i++ {
		if got := Current(); got != id {
			t.Fatalf("id changed between calls: %d != %d", got, id)
		}
	}
}

func TestCurrentDiffersAcrossGoroutines(t *testing.T) {
	id := Current()
	ch := make(chan uint64)
	go func() { ch <- Current() }()
	if other := <-ch; other == id {
		t.Fatalf("two goroutines reported the same id %d", id)
	}
}
