// SPDX-License-Identifier: Unlicense OR MIT

/*
Package casement is a thread-safe control surface for a single native
application window.

Native window systems require that a window is only touched from the
thread that created it. casement hides that restriction: a Window may be
queried and mutated from any goroutine. Operations invoked off the
owning thread are marshalled onto it and the caller blocks until the
result is available.

A Window is created and pumped by the same goroutine:

	w, err := casement.New(casement.Title("hello"))
	if err != nil {
		log.Fatal(err)
	}
	go worker(w) // free to call w.SetTitle, w.Size, ...
	w.Run()      // blocks until the window is destroyed

Embedders that own their main loop can drive the window one message at
a time with Step instead of Run.

Window lifecycle changes are delivered through typed listeners:

	w.OnResize(func(width, height int) { ... })
	w.OnceClosed(func() { ... })

Listeners run on the owning thread. They may call any Window method
directly; casement detects the reentrant case and skips the marshal.
*/
package casement
