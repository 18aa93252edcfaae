package render

import (
	"image"
	"image/color"
	"math"
)

// ipt converts floating-point bbox coordinates to a pixel position.
// Floor keeps negative (unclamped) coordinates on the expected side of zero.
func ipt(x, y float64) image.Point {
	return image.Point{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// fillRect paints the half-open rectangle r with c, clipped to dst.
func fillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetNRGBA(x, y, c)
		}
	}
}

// fillAlpha paints the half-open rectangle r with coverage v, clipped to
// dst. The mask canvas is single-channel alpha because image/draw keys
// composition off the mask's alpha, not its luma.
func fillAlpha(dst *image.Alpha, r image.Rectangle, v uint8) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetAlpha(x, y, color.Alpha{A: v})
		}
	}
}

// strokeOutline draws an unfilled rectangle outline from tl to br inclusive,
// with the stroke extending inward from the edges. Coordinates are not
// clamped; out-of-bounds pixels are clipped away by fillRect.
func strokeOutline(dst *image.NRGBA, tl, br image.Point, width int, c color.NRGBA) {
	x0, y0 := tl.X, tl.Y
	x1, y1 := br.X, br.Y

	fillRect(dst, image.Rect(x0, y0, x1+1, y0+width), c)      // top
	fillRect(dst, image.Rect(x0, y1+1-width, x1+1, y1+1), c)  // bottom
	fillRect(dst, image.Rect(x0, y0, x0+width, y1+1), c)      // left
	fillRect(dst, image.Rect(x1+1-width, y0, x1+1, y1+1), c)  // right
}
