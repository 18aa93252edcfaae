package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG encodes img into a temp file and returns its path.
func writePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("decodes a png", func(t *testing.T) {
		t.Parallel()

		src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
		path := writePNG(t, src)

		img, err := Open(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
			t.Errorf("bounds: got %v, want 8x6", img.Bounds())
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		if _, err := Open(filepath.Join(t.TempDir(), "nope.png")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("non-image file fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "junk.png")
		if err := os.WriteFile(path, []byte("not an image"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
		if _, err := Open(path); err == nil {
			t.Error("expected decode error")
		}
	})
}

func TestHasAlpha(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"NRGBA", image.NewNRGBA(image.Rect(0, 0, 1, 1)), true},
		{"RGBA", image.NewRGBA(image.Rect(0, 0, 1, 1)), true},
		{"NRGBA64", image.NewNRGBA64(image.Rect(0, 0, 1, 1)), true},
		{"Gray", image.NewGray(image.Rect(0, 0, 1, 1)), false},
		{"YCbCr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := HasAlpha(tt.img); got != tt.want {
				t.Errorf("HasAlpha(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	t.Run("drops the alpha channel", func(t *testing.T) {
		t.Parallel()

		src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
		src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 30, A: 0})
		src.SetNRGBA(1, 1, color.NRGBA{R: 5, G: 6, B: 7, A: 128})

		flat := Flatten(src)

		got := flat.NRGBAAt(0, 0)
		if got.A != 255 {
			t.Errorf("alpha: got %d, want 255", got.A)
		}
		// stored RGB shows through unchanged, no compositing
		if got.R != 200 || got.G != 10 || got.B != 30 {
			t.Errorf("rgb: got %v, want 200/10/30", got)
		}
		if a := flat.NRGBAAt(1, 1).A; a != 255 {
			t.Errorf("alpha at (1,1): got %d, want 255", a)
		}
	})

	t.Run("leaves opaque images opaque", func(t *testing.T) {
		t.Parallel()

		src := image.NewGray(image.Rect(0, 0, 3, 3))
		flat := Flatten(src)
		if a := flat.NRGBAAt(2, 2).A; a != 255 {
			t.Errorf("alpha: got %d, want 255", a)
		}
	})

	t.Run("does not share pixels with the source", func(t *testing.T) {
		t.Parallel()

		src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		flat := Flatten(src)
		flat.SetNRGBA(0, 0, color.NRGBA{R: 9, A: 255})
		if src.NRGBAAt(0, 0).R == 9 {
			t.Error("Flatten must copy, not alias, the source pixels")
		}
	})
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("format follows the extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))

		for _, name := range []string{"out.png", "out.jpg"} {
			path := filepath.Join(dir, name)
			if err := Save(img, path); err != nil {
				t.Fatalf("Save(%s): %v", name, err)
			}
			reloaded, err := Open(path)
			if err != nil {
				t.Fatalf("reopen %s: %v", name, err)
			}
			if reloaded.Bounds().Dx() != 4 {
				t.Errorf("%s: unexpected bounds %v", name, reloaded.Bounds())
			}
		}
	})

	t.Run("unknown extension fails", func(t *testing.T) {
		t.Parallel()

		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		if err := Save(img, filepath.Join(t.TempDir(), "out.xyz")); err == nil {
			t.Error("expected error for unsupported extension")
		}
	})
}

func TestOrientation(t *testing.T) {
	t.Parallel()

	t.Run("file without EXIF has no orientation", func(t *testing.T) {
		t.Parallel()

		path := writePNG(t, image.NewNRGBA(image.Rect(0, 0, 2, 2)))
		if _, ok := Orientation(path); ok {
			t.Error("expected ok=false for a file without EXIF data")
		}
	})

	t.Run("missing file has no orientation", func(t *testing.T) {
		t.Parallel()

		if _, ok := Orientation(filepath.Join(t.TempDir(), "nope.jpg")); ok {
			t.Error("expected ok=false for a missing file")
		}
	})
}
