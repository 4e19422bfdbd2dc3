// SPDX-License-Identifier: Unlicense OR MIT

// Command casement opens a window described by flags or a YAML profile
// and logs its lifecycle events until it is closed. It doubles as a
// smoke test for the platform bindings.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/casement/casement"
)

func main() {
	var (
		profile = flag.String("profile", "", "YAML window profile to load")
		title   = flag.String("title", "", "window title (overrides the profile)")
		width   = flag.Int("width", 0, "client-area width (overrides the profile)")
		height  = flag.Int("height", 0, "client-area height (overrides the profile)")
		fixed   = flag.Bool("fixed", false, "make the window non-resizable")
		bare    = flag.Bool("bare", false, "create the window without decorations")
		onTop   = flag.Bool("top", false, "keep the window above regular windows")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts, err := options(*profile, *title, *width, *height, *fixed, *bare, *onTop)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	w, err := casement.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w.OnResize(func(width, height int) {
		logger.Info("resize", "width", width, "height", height)
	})
	w.OnFocus(func(focused bool) {
		logger.Info("focus", "focused", focused)
	})
	w.OnMinimize(func(minimized bool) {
		logger.Info("minimize", "minimized", minimized)
	})
	w.OnMaximize(func(maximized bool) {
		logger.Info("maximize", "maximized", maximized)
	})
	w.OnClose(func() bool {
		logger.Info("close requested")
		return false
	})
	w.OnClosed(func() {
		logger.Info("window closed")
	})

	logger.Info("window created",
		"title", w.Title(), "size", w.Size(), "resizable", w.Resizable())
	w.Run()
}

func options(profile, title string, width, height int, fixed, bare, onTop bool) ([]casement.Option, error) {
	var opts []casement.Option
	if profile != "" {
		loaded, err := casement.LoadProfile(profile)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}
	if title != "" {
		opts = append(opts, casement.Title(title))
	}
	if width != 0 || height != 0 {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("casement: size %dx%d is not positive", width, height)
		}
		opts = append(opts, casement.Size(width, height))
	}
	if fixed {
		opts = append(opts, casement.Resizable(false))
	}
	if bare {
		opts = append(opts, casement.Decorated(false))
	}
	if onTop {
		opts = append(opts, casement.AlwaysOnTop(true))
	}
	return opts, nil
}
