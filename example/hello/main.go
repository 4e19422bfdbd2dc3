// SPDX-License-Identifier: Unlicense OR MIT

// A minimal casement program: open a window, retitle it from another
// goroutine, and wait for it to be closed.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/casement/casement"
)

func main() {
	w, err := casement.New(
		casement.Title("hello"),
		casement.Size(640, 480),
	)
	if err != nil {
		log.Fatal(err)
	}

	w.OnceClosed(func() { fmt.Println("bye") })

	go func() {
		for i := 1; ; i++ {
			time.Sleep(time.Second)
			w.SetTitle(fmt.Sprintf("hello (%dx%d) #%d", w.Size().X, w.Size().Y, i))
		}
	}()

	w.Run()
}
