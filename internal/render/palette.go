package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Default draw colors. The box color doubles as the label background so the
// label reads as part of its annotation.
const (
	DefaultBoxColor      = "#ff0000"
	DefaultBoundaryColor = "#0000ff"
	DefaultLabelColor    = "#ffffff"
)

// Palette holds the fixed accent colors for one render run.
type Palette struct {
	// Box is used for annotation outlines and label backgrounds.
	Box color.NRGBA
	// Boundary is used for the workspace-boundary outline.
	Boundary color.NRGBA
	// Label is the label text color, chosen to contrast with Box.
	Label color.NRGBA
}

// DefaultPalette returns the red/blue/white palette.
func DefaultPalette() Palette {
	p, err := ParsePalette(DefaultBoxColor, DefaultBoundaryColor, DefaultLabelColor)
	if err != nil {
		// the defaults are compile-time constants
		panic(err)
	}
	return p
}

// ParsePalette builds a Palette from "#rrggbb" hex strings.
func ParsePalette(box, boundary, label string) (Palette, error) {
	var p Palette
	var err error

	if p.Box, err = parseHex(box); err != nil {
		return Palette{}, err
	}
	if p.Boundary, err = parseHex(boundary); err != nil {
		return Palette{}, err
	}
	if p.Label, err = parseHex(label); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func parseHex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
