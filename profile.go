// SPDX-License-Identifier: Unlicense OR MIT

package casement

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a window description loadable from YAML. Zero or omitted
// fields keep their defaults; pointer fields distinguish "absent" from
// an explicit false/zero.
type Profile struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	MinWidth    int    `yaml:"min_width"`
	MinHeight   int    `yaml:"min_height"`
	MaxWidth    int    `yaml:"max_width"`
	MaxHeight   int    `yaml:"max_height"`
	Resizable   *bool  `yaml:"resizable"`
	Decorated   *bool  `yaml:"decorated"`
	AlwaysOnTop bool   `yaml:"always_on_top"`
	Hidden      bool   `yaml:"hidden"`
	// Background is "#rrggbb" or "#rrggbbaa".
	Background string `yaml:"background"`
}

// LoadProfile reads a YAML window profile and converts it into
// construction options. Unknown keys are rejected so typos surface
// instead of being ignored.
func LoadProfile(path string) ([]Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("casement: read profile: %w", err)
	}
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("casement: parse profile %s: %w", path, err)
	}
	return p.Options()
}

// Options converts the profile into the equivalent Option list.
func (p *Profile) Options() ([]Option, error) {
	var opts []Option
	if p.Title != "" {
		opts = append(opts, Title(p.Title))
	}
	if p.Width != 0 || p.Height != 0 {
		if p.Width <= 0 || p.Height <= 0 {
			return nil, fmt.Errorf("casement: profile size %dx%d is not positive", p.Width, p.Height)
		}
		opts = append(opts, Size(p.Width, p.Height))
	}
	if p.MinWidth != 0 || p.MinHeight != 0 {
		opts = append(opts, MinSize(p.MinWidth, p.MinHeight))
	}
	if p.MaxWidth != 0 || p.MaxHeight != 0 {
		opts = append(opts, MaxSize(p.MaxWidth, p.MaxHeight))
	}
	if p.Resizable != nil {
		opts = append(opts, Resizable(*p.Resizable))
	}
	if p.Decorated != nil {
		opts = append(opts, Decorated(*p.Decorated))
	}
	if p.AlwaysOnTop {
		opts = append(opts, AlwaysOnTop(true))
	}
	if p.Hidden {
		opts = append(opts, Hidden())
	}
	if p.Background != "" {
		col, err := parseColor(p.Background)
		if err != nil {
			return nil, err
		}
		opts = append(opts, Background(col))
	}
	return opts, nil
}

func parseColor(s string) (color.NRGBA, error) {
	var c color.NRGBA
	c.A = 0xff
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("want #rrggbb or #rrggbbaa, got %q", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("casement: bad background color: %w", err)
	}
	return c, nil
}
