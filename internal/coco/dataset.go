package coco

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dataset is the decoded form of a COCO-style metadata document.
//
// Every top-level key is optional. encoding/json leaves a slice nil when its
// key is absent, which is exactly the distinction the Has* methods expose.
type Dataset struct {
	Images      []ImageEntry `json:"images,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Categories  []Category   `json:"categories,omitempty"`
}

// ImageEntry associates an image id with its bare file name.
type ImageEntry struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
}

// Annotation is one detection box. BBox is [x, y, width, height] with the
// origin at the top-left; a missing or short bbox marks the annotation as
// malformed but never aborts a whole image. CategoryID is a pointer because
// the key itself is optional and id 0 is a legal category.
type Annotation struct {
	ID         int       `json:"id"`
	ImageID    int       `json:"image_id"`
	BBox       []float64 `json:"bbox,omitempty"`
	CategoryID *int      `json:"category_id,omitempty"`
}

// Category names a category id for label rendering.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Load reads and decodes the metadata file at path.
// A missing or undecodable file is reported as ErrMetadataMissing.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: cannot find %s", ErrMetadataMissing, path)
		}
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrMetadataMissing, path, err)
	}

	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", ErrMetadataMissing, path, err)
	}

	return &ds, nil
}

// HasImages reports whether the images key was present in the document.
func (d *Dataset) HasImages() bool { return d.Images != nil }

// HasAnnotations reports whether the annotations key was present.
func (d *Dataset) HasAnnotations() bool { return d.Annotations != nil }

// HasCategories reports whether the categories key was present.
func (d *Dataset) HasCategories() bool { return d.Categories != nil }

// ImageID maps a bare filename (no directory component) to its image id.
// The images list is scanned in document order and the first entry whose
// file_name matches exactly wins. Matching is case-sensitive with no path
// normalization.
func (d *Dataset) ImageID(filename string) (int, bool) {
	for _, img := range d.Images {
		if img.FileName == filename {
			return img.ID, true
		}
	}
	return 0, false
}

// ResolveImageID applies the tolerance policy to an ImageID lookup.
// In strict mode a miss is a hard failure wrapping ErrImageNotFound; in
// lenient mode it yields ok=false and the caller skips the image.
func (d *Dataset) ResolveImageID(filename string, strict bool) (int, bool, error) {
	if id, ok := d.ImageID(filename); ok {
		return id, true, nil
	}
	if strict {
		return 0, false, fmt.Errorf("%w: cannot find %q in metadata", ErrImageNotFound, filename)
	}
	return 0, false, nil
}

// AnnotationsFor returns every annotation referencing the given image id,
// preserving document order.
func (d *Dataset) AnnotationsFor(imageID int) []Annotation {
	var matched []Annotation
	for _, ann := range d.Annotations {
		if ann.ImageID == imageID {
			matched = append(matched, ann)
		}
	}
	return matched
}

// CategoryName resolves a category id to its display name. The categories
// list is scanned in document order; a dangling id falls back to the literal
// "Class {id}".
func (d *Dataset) CategoryName(categoryID int) string {
	for _, cat := range d.Categories {
		if cat.ID == categoryID {
			return cat.Name
		}
	}
	return fmt.Sprintf("Class %d", categoryID)
}
