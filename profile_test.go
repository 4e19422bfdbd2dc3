// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "window.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
title: editor
width: 1024
height: 768
min_width: 400
min_height: 300
resizable: false
always_on_top: true
background: "#20304050"
`)

	opts, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	cnf := defaultConfig()
	cnf.apply(opts)

	if cnf.title != "editor" {
		t.Errorf("title = %q, want editor", cnf.title)
	}
	if cnf.size != image.Pt(1024, 768) {
		t.Errorf("size = %v, want (1024,768)", cnf.size)
	}
	if cnf.minSize == nil || *cnf.minSize != image.Pt(400, 300) {
		t.Errorf("minSize = %v, want (400,300)", cnf.minSize)
	}
	if cnf.maxSize != nil {
		t.Errorf("maxSize = %v, want unset", cnf.maxSize)
	}
	if cnf.resizable {
		t.Error("resizable not disabled")
	}
	if !cnf.decorated {
		t.Error("decorations default lost")
	}
	if !cnf.onTop {
		t.Error("always_on_top not applied")
	}
	c := cnf.background
	if c.R != 0x20 || c.G != 0x30 || c.B != 0x40 || c.A != 0x50 {
		t.Errorf("background = %v, want 20304050", c)
	}
}

func TestLoadProfileEmptyKeepsDefaults(t *testing.T) {
	path := writeProfile(t, "title: plain\n")

	opts, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	cnf := defaultConfig()
	cnf.apply(opts)
	want := defaultConfig()

	if cnf.size != want.size || cnf.resizable != want.resizable ||
		cnf.decorated != want.decorated || cnf.background != want.background {
		t.Errorf("sparse profile disturbed the defaults: %+v", cnf)
	}
}

func TestLoadProfileUnknownKey(t *testing.T) {
	path := writeProfile(t, "titel: typo\n")

	if _, err := LoadProfile(path); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestLoadProfileMissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestProfileBadSize(t *testing.T) {
	p := Profile{Width: 100}
	if _, err := p.Options(); err == nil {
		t.Error("half-specified size accepted")
	}
	p = Profile{Width: -1, Height: 100}
	if _, err := p.Options(); err == nil {
		t.Error("negative width accepted")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		a       uint8
		ok      bool
	}{
		{"#ff0080", 0xff, 0x00, 0x80, 0xff, true},
		{"#01020304", 0x01, 0x02, 0x03, 0x04, true},
		{"ff0080", 0, 0, 0, 0, false},
		{"#ff008", 0, 0, 0, 0, false},
		{"#gggggg", 0, 0, 0, 0, false},
		{"", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		c, err := parseColor(tt.in)
		if tt.ok != (err == nil) {
			t.Errorf("parseColor(%q) error = %v, want ok=%t", tt.in, err, tt.ok)
			continue
		}
		if !tt.ok {
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
			t.Errorf("parseColor(%q) = %v", tt.in, c)
		}
	}
}
