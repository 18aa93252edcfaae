package coco

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeMetadata writes a metadata document into a temp dir and returns its path.
func writeMetadata(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "coco.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write metadata fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("decodes a full document", func(t *testing.T) {
		t.Parallel()

		path := writeMetadata(t, `{
			"images": [{"id": 1, "file_name": "a.jpg"}],
			"annotations": [{"id": 10, "image_id": 1, "bbox": [1, 2, 3, 4], "category_id": 5}],
			"categories": [{"id": 5, "name": "person"}]
		}`)

		ds, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ds.HasImages() || !ds.HasAnnotations() || !ds.HasCategories() {
			t.Error("expected all keys to be present")
		}
		if len(ds.Annotations) != 1 {
			t.Fatalf("expected 1 annotation, got %d", len(ds.Annotations))
		}
		ann := ds.Annotations[0]
		if ann.CategoryID == nil || *ann.CategoryID != 5 {
			t.Errorf("expected category_id 5, got %v", ann.CategoryID)
		}
		if len(ann.BBox) != 4 || ann.BBox[2] != 3 {
			t.Errorf("unexpected bbox: %v", ann.BBox)
		}
	})

	t.Run("absent keys decode to nil slices", func(t *testing.T) {
		t.Parallel()

		path := writeMetadata(t, `{"images": []}`)

		ds, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ds.HasImages() {
			t.Error("present-but-empty images should count as present")
		}
		if ds.HasAnnotations() {
			t.Error("absent annotations should not count as present")
		}
		if ds.HasCategories() {
			t.Error("absent categories should not count as present")
		}
	})

	t.Run("absent category_id decodes to nil", func(t *testing.T) {
		t.Parallel()

		path := writeMetadata(t, `{"annotations": [{"id": 1, "image_id": 2, "bbox": [0, 0, 1, 1]}]}`)

		ds, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ds.Annotations[0].CategoryID != nil {
			t.Errorf("expected nil category_id, got %v", *ds.Annotations[0].CategoryID)
		}
	})

	t.Run("missing file is ErrMetadataMissing", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, ErrMetadataMissing) {
			t.Errorf("expected ErrMetadataMissing, got %v", err)
		}
	})

	t.Run("invalid JSON is ErrMetadataMissing", func(t *testing.T) {
		t.Parallel()

		path := writeMetadata(t, `{"images": [`)

		_, err := Load(path)
		if !errors.Is(err, ErrMetadataMissing) {
			t.Errorf("expected ErrMetadataMissing, got %v", err)
		}
	})
}

func TestDatasetImageID(t *testing.T) {
	t.Parallel()

	ds := &Dataset{
		Images: []ImageEntry{
			{ID: 3, FileName: "a.jpg"},
			{ID: 7, FileName: "b.png"},
			{ID: 9, FileName: "a.jpg"}, // duplicate, first entry wins
		},
	}

	tests := []struct {
		name     string
		filename string
		wantID   int
		wantOK   bool
	}{
		{"exact match", "b.png", 7, true},
		{"first entry wins on duplicates", "a.jpg", 3, true},
		{"no match", "c.jpeg", 0, false},
		{"case-sensitive", "A.jpg", 0, false},
		{"no path normalization", "./a.jpg", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			id, ok := ds.ImageID(tt.filename)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ImageID(%q) = (%d, %v), want (%d, %v)", tt.filename, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestDatasetResolveImageID(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Images: []ImageEntry{{ID: 1, FileName: "a.jpg"}}}

	t.Run("hit is identical in both modes", func(t *testing.T) {
		t.Parallel()

		for _, strict := range []bool{false, true} {
			id, ok, err := ds.ResolveImageID("a.jpg", strict)
			if err != nil || !ok || id != 1 {
				t.Errorf("strict=%v: got (%d, %v, %v), want (1, true, nil)", strict, id, ok, err)
			}
		}
	})

	t.Run("lenient miss yields absent result", func(t *testing.T) {
		t.Parallel()

		_, ok, err := ds.ResolveImageID("missing.jpg", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected ok=false for a miss")
		}
	})

	t.Run("strict miss raises ErrImageNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := ds.ResolveImageID("missing.jpg", true)
		if !errors.Is(err, ErrImageNotFound) {
			t.Errorf("expected ErrImageNotFound, got %v", err)
		}
	})

	t.Run("absent images list behaves as a miss", func(t *testing.T) {
		t.Parallel()

		empty := &Dataset{}
		_, _, err := empty.ResolveImageID("a.jpg", true)
		if !errors.Is(err, ErrImageNotFound) {
			t.Errorf("expected ErrImageNotFound, got %v", err)
		}
	})
}

func TestDatasetAnnotationsFor(t *testing.T) {
	t.Parallel()

	ds := &Dataset{
		Annotations: []Annotation{
			{ID: 1, ImageID: 5},
			{ID: 2, ImageID: 6},
			{ID: 3, ImageID: 5},
		},
	}

	got := ds.AnnotationsFor(5)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("AnnotationsFor(5) = %v, want annotations 1 and 3 in order", got)
	}

	if anns := ds.AnnotationsFor(42); anns != nil {
		t.Errorf("expected no annotations for unreferenced id, got %v", anns)
	}
}

func TestDatasetCategoryName(t *testing.T) {
	t.Parallel()

	ds := &Dataset{
		Categories: []Category{
			{ID: 1, Name: "person"},
			{ID: 1, Name: "shadowed"},
			{ID: 2, Name: "car"},
		},
	}

	tests := []struct {
		name       string
		categoryID int
		want       string
	}{
		{"resolves name", 2, "car"},
		{"first entry wins on duplicates", 1, "person"},
		{"dangling id falls back to Class literal", 7, "Class 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ds.CategoryName(tt.categoryID); got != tt.want {
				t.Errorf("CategoryName(%d) = %q, want %q", tt.categoryID, got, tt.want)
			}
		})
	}
}
