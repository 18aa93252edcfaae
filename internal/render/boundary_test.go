package render

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestBoundaryPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"dir/img.jpg", "dir/img.txt"},
		{"img.jpeg", "img.txt"},
		{"a/b/c.png", "a/b/c.txt"},
		{"noext", "noext.txt"},
	}

	for _, tt := range tests {
		if got := BoundaryPath(tt.in); got != tt.want {
			t.Errorf("BoundaryPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseBoundary(t *testing.T) {
	t.Parallel()

	t.Run("valid sidecar", func(t *testing.T) {
		t.Parallel()

		b, err := ParseBoundary("1; [[5,5],[60,5],[60,40],[5,40]]; trailing junk; more")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.TopLeft != (image.Point{X: 5, Y: 5}) {
			t.Errorf("TopLeft = %v, want (5,5)", b.TopLeft)
		}
		if b.BottomRight != (image.Point{X: 60, Y: 40}) {
			t.Errorf("BottomRight = %v, want (60,40)", b.BottomRight)
		}
	})

	t.Run("decimal and negative coordinates", func(t *testing.T) {
		t.Parallel()

		b, err := ParseBoundary("0;[[-2.5, 3.75],[10,0],[99.9, 41.2],[0,40]]")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.TopLeft != (image.Point{X: -3, Y: 3}) {
			t.Errorf("TopLeft = %v, want (-3,3)", b.TopLeft)
		}
		if b.BottomRight != (image.Point{X: 99, Y: 41}) {
			t.Errorf("BottomRight = %v, want (99,41)", b.BottomRight)
		}
	})

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no semicolon", "just one part", ErrBoundaryParts},
		{"empty content", "", ErrBoundaryParts},
		{"unbalanced brackets", "1; [[1,2],[3,4]", ErrBoundarySyntax},
		{"not a list", "1; hello", ErrBoundarySyntax},
		{"garbage number", "1; [[1,2],[3,4],[5,x],[7,8]]", ErrBoundarySyntax},
		{"trailing garbage", "1; [[1,2],[3,4],[5,6],[7,8]] oops", ErrBoundarySyntax},
		{"three points", "1; [[1,2],[3,4],[5,6]]", ErrBoundaryShape},
		{"five points", "1; [[1,2],[3,4],[5,6],[7,8],[9,10]]", ErrBoundaryShape},
		{"three coordinates in a point", "1; [[1,2,3],[3,4],[5,6],[7,8]]", ErrBoundaryShape},
		{"empty point", "1; [[],[3,4],[5,6],[7,8]]", ErrBoundaryShape},
		{"empty outer list", "1; []", ErrBoundaryShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseBoundary(tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseBoundary(%q) error = %v, want %v", tt.content, err, tt.wantErr)
			}
		})
	}
}

func TestParseBoundaryFile(t *testing.T) {
	t.Parallel()

	t.Run("reads from disk", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "img.txt")
		if err := os.WriteFile(path, []byte("1; [[0,0],[9,0],[9,9],[0,9]]"), 0600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		b, err := ParseBoundaryFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.BottomRight != (image.Point{X: 9, Y: 9}) {
			t.Errorf("BottomRight = %v, want (9,9)", b.BottomRight)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		if _, err := ParseBoundaryFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
