// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"image"
	"image/color"
	"testing"
)

func TestResizeDirFor(t *testing.T) {
	tests := []struct {
		edge Edge
		dir  resizeDir
		ok   bool
	}{
		{EdgeLeft, sizeLeft, true},
		{EdgeRight, sizeRight, true},
		{EdgeTop, sizeTop, true},
		{EdgeTop | EdgeLeft, sizeTopLeft, true},
		{EdgeTop | EdgeRight, sizeTopRight, true},
		{EdgeBottom, sizeBottom, true},
		{EdgeBottom | EdgeLeft, sizeBottomLeft, true},
		{EdgeBottom | EdgeRight, sizeBottomRight, true},
		{0, 0, false},
		{EdgeLeft | EdgeRight, 0, false},
		{EdgeTop | EdgeBottom, 0, false},
		{EdgeLeft | EdgeRight | EdgeTop | EdgeBottom, 0, false},
	}
	for _, tt := range tests {
		dir, ok := resizeDirFor(tt.edge)
		if dir != tt.dir || ok != tt.ok {
			t.Errorf("resizeDirFor(%04b) = %d, %t; want %d, %t",
				tt.edge, dir, ok, tt.dir, tt.ok)
		}
	}
}

func TestResizeDirValuesStable(t *testing.T) {
	// The directional codes are a wire contract with the native side;
	// renumbering them would resize from the wrong edge.
	want := map[resizeDir]uint8{
		sizeLeft:        1,
		sizeRight:       2,
		sizeTop:         3,
		sizeTopLeft:     4,
		sizeTopRight:    5,
		sizeBottom:      6,
		sizeBottomLeft:  7,
		sizeBottomRight: 8,
	}
	for dir, val := range want {
		if uint8(dir) != val {
			t.Errorf("resize direction = %d, want %d", dir, val)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cnf := defaultConfig()

	if cnf.title != "casement" {
		t.Errorf("default title = %q", cnf.title)
	}
	if cnf.size != image.Pt(800, 600) {
		t.Errorf("default size = %v", cnf.size)
	}
	if !cnf.resizable || !cnf.decorated {
		t.Error("windows default to resizable and decorated")
	}
	if cnf.onTop || cnf.hidden {
		t.Error("windows default to regular z-order and visible")
	}
	if cnf.minSize != nil || cnf.maxSize != nil {
		t.Error("default config overrides the platform size bounds")
	}
}

func TestOptionsApply(t *testing.T) {
	cnf := defaultConfig()
	cnf.apply([]Option{
		Title("opts"),
		Size(10, 20),
		MinSize(1, 2),
		MaxSize(3, 4),
		Resizable(false),
		Decorated(false),
		AlwaysOnTop(true),
		Hidden(),
		Background(color.NRGBA{R: 5, A: 0xff}),
	})

	if cnf.title != "opts" || cnf.size != image.Pt(10, 20) {
		t.Errorf("title/size = %q/%v", cnf.title, cnf.size)
	}
	if cnf.minSize == nil || *cnf.minSize != image.Pt(1, 2) {
		t.Errorf("minSize = %v", cnf.minSize)
	}
	if cnf.maxSize == nil || *cnf.maxSize != image.Pt(3, 4) {
		t.Errorf("maxSize = %v", cnf.maxSize)
	}
	if cnf.resizable || cnf.decorated || !cnf.onTop || !cnf.hidden {
		t.Error("boolean options not applied")
	}
	if cnf.background.R != 5 {
		t.Errorf("background = %v", cnf.background)
	}
}
