package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Save writes img to path, with the encoding format inferred from the
// path's extension. JPEG and PNG are the formats produced by the renderer;
// the underlying encoder also accepts GIF, TIFF, and BMP extensions.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}
