package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// minLabelSize is the floor for the dynamic label font size.
const minLabelSize = 5

// labelFontSize computes the label font size from the vertical span of the
// annotation's margin-expanded region: 15% of the span, never below the
// minimum. The coupling to the masked span rather than the drawn box is
// deliberate and load-bearing for output compatibility.
func labelFontSize(span int) int {
	size := int(0.15 * float64(span))
	if size < minLabelSize {
		size = minLabelSize
	}
	return size
}

// labelOffset computes how far above the box top the label anchors.
// When the offset would push the label past the top edge it is clamped so
// the label anchors at y=0.
func labelOffset(size, y int) int {
	offset := size * 5 / 4
	if y-offset < 0 {
		offset = y
	}
	return offset
}

var (
	labelFontOnce sync.Once
	labelSFNT     *sfnt.Font
	labelFontErr  error
)

// labelFont wraps the embedded Go Regular font. The parsed font is shared
// process-wide; faces are built per call because a font.Face keeps mutable
// rasterization state and must not be shared across goroutines.
type labelFont struct {
	font *sfnt.Font
}

func newLabelFont() (*labelFont, error) {
	labelFontOnce.Do(func() {
		labelSFNT, labelFontErr = opentype.Parse(goregular.TTF)
	})
	if labelFontErr != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", labelFontErr)
	}
	return &labelFont{font: labelSFNT}, nil
}

// Face returns a fresh face for the given pixel size.
func (lf *labelFont) Face(size int) (font.Face, error) {
	face, err := opentype.NewFace(lf.font, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %dpx font face: %w", size, err)
	}
	return face, nil
}

// drawLabel paints a filled background rectangle sized to the text extent
// and the text itself, anchored with its top-left corner at (x, y).
func drawLabel(dst *image.NRGBA, face font.Face, x, y int, text string, bg, fg color.NRGBA) {
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	fillRect(dst, image.Rect(x, y, x+width, y+height), bg)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+ascent),
	}
	d.DrawString(text)
}
