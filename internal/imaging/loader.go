package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	"github.com/disintegration/imaging"
)

// Open decodes the image file at path.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// HasAlpha reports whether the decoded image carries a transparency channel.
// Detection follows the concrete Go image type, the same way the decoder
// chose it from the pixel format.
func HasAlpha(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

// Flatten returns an opaque NRGBA copy of img ready for drawing.
// For images with an alpha channel the channel is dropped, not composited,
// so the stored RGB values show through unchanged. Sources without an
// alpha channel clone to an already opaque copy.
func Flatten(img image.Image) *image.NRGBA {
	flat := imaging.Clone(img)
	if !HasAlpha(img) {
		return flat
	}
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xff
	}
	return flat
}
