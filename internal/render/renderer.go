package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/vision-tools/cocoviz/internal/coco"
	"github.com/vision-tools/cocoviz/internal/imaging"
)

// DefaultStrokeWidth is the outline stroke width in pixels.
const DefaultStrokeWidth = 2

// Options configures a Renderer.
type Options struct {
	// MaskMargin is the margin width around each annotation kept in the
	// masked output. Zero disables masked-output generation.
	MaskMargin int

	// Strict selects the tolerance policy: strict propagates lookup and
	// I/O failures as errors, lenient downgrades them to skipped images.
	Strict bool

	// Palette holds the accent colors. The zero value means DefaultPalette.
	Palette Palette

	// StrokeWidth is the outline width; zero means DefaultStrokeWidth.
	StrokeWidth int
}

// Result describes what one Render call produced.
type Result struct {
	// Skipped is true when the render was a no-op: the image has no entry
	// in the metadata (lenient mode) or no matching annotations.
	Skipped    bool
	SkipReason string

	OutputPath string
	MaskedPath string

	// BoxesDrawn counts annotations that had a usable bbox.
	BoxesDrawn int
	// MalformedAnnotations counts matching annotations skipped for a
	// missing or short bbox.
	MalformedAnnotations int
	// BoundaryDrawn is true when a sidecar boundary rectangle was drawn.
	BoundaryDrawn bool
}

// Renderer draws annotation overlays for images of a single dataset.
// The dataset is read-only shared input; a Renderer is safe for concurrent
// use by multiple workers.
type Renderer struct {
	ds     *coco.Dataset
	opts   Options
	font   *labelFont
	logger *slog.Logger
}

// New creates a Renderer for the given dataset.
func New(ds *coco.Dataset, opts Options, logger *slog.Logger) (*Renderer, error) {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = DefaultStrokeWidth
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette()
	}
	if logger == nil {
		logger = slog.Default()
	}

	font, err := newLabelFont()
	if err != nil {
		return nil, err
	}

	return &Renderer{ds: ds, opts: opts, font: font, logger: logger}, nil
}

// Strict reports the renderer's tolerance policy.
func (r *Renderer) Strict() bool { return r.opts.Strict }

// MaskedPath derives the masked-output path for a destination: the
// extension is replaced with a _masked.jpg suffix. The masked variant is
// always JPEG regardless of the destination's own format.
func MaskedPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_masked.jpg"
}

// Render draws all annotations for the image at imagePath and writes the
// result to outputPath. The output directory must already exist.
//
// A nil error with Result.Skipped set means the image was a no-op: either
// its filename has no metadata entry (lenient mode) or no annotation
// references its id. Once at least one annotation matches, an output file
// is always written, even if every matching annotation had an unusable
// bbox.
func (r *Renderer) Render(ctx context.Context, imagePath, outputPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := filepath.Base(imagePath)
	imageID, found, err := r.ds.ResolveImageID(filename, r.opts.Strict)
	if err != nil {
		return nil, err
	}
	if !found {
		r.logger.Warn("cannot find image in metadata, skipping", "file", filename)
		return &Result{Skipped: true, SkipReason: "not listed in metadata"}, nil
	}

	annotations := r.ds.AnnotationsFor(imageID)
	if len(annotations) == 0 {
		r.logger.Debug("no annotations reference image, skipping", "file", filename, "image_id", imageID)
		return &Result{Skipped: true, SkipReason: "no matching annotations"}, nil
	}

	src, err := imaging.Open(imagePath)
	if err != nil {
		return r.lenientSkip("unreadable image", filename, err)
	}
	canvas := imaging.Flatten(src)
	bounds := canvas.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())

	if orientation, ok := imaging.Orientation(imagePath); ok && orientation != 1 {
		r.logger.Warn("image carries an EXIF orientation; boxes are drawn in stored-pixel coordinates",
			"file", filename, "orientation", orientation)
	}

	masking := r.opts.MaskMargin > 0
	var mask *image.Alpha
	if masking {
		mask = image.NewAlpha(bounds)
	}

	result := &Result{OutputPath: outputPath}
	margin := float64(r.opts.MaskMargin)

	for _, ann := range annotations {
		if len(ann.BBox) < 4 {
			r.logger.Warn(ErrMalformedAnnotation.Error(), "file", filename, "annotation_id", ann.ID)
			result.MalformedAnnotations++
			continue
		}
		x, y := ann.BBox[0], ann.BBox[1]
		w, h := ann.BBox[2], ann.BBox[3]

		// outline is drawn unclamped; clipping happens at the pixel level
		strokeOutline(canvas, ipt(x, y), ipt(x+w, y+h), r.opts.StrokeWidth, r.opts.Palette.Box)

		// margin-expanded region, clamped to the image
		left := math.Max(0, x-margin)
		right := math.Min(width, x+w+margin)
		top := math.Max(0, y-margin)
		bottom := math.Min(height, y+h+margin)

		labelTop := y
		if ann.CategoryID != nil && r.ds.HasCategories() {
			name := r.ds.CategoryName(*ann.CategoryID)
			size := labelFontSize(int(bottom - top))
			offset := labelOffset(size, int(y))

			face, err := r.font.Face(size)
			if err != nil {
				return nil, err
			}
			drawLabel(canvas, face, int(x), int(y)-offset, name, r.opts.Palette.Box, r.opts.Palette.Label)
			labelTop = y - float64(offset)
		}

		// the label sits above the box; the kept region must never crop it
		if top > labelTop {
			top = labelTop
		}

		if masking {
			fillAlpha(mask, image.Rect(int(left), int(top), int(right), int(bottom)), 255)
		}
		result.BoxesDrawn++
	}

	r.drawBoundary(canvas, imagePath, result)

	if err := imaging.Save(canvas, outputPath); err != nil {
		return r.lenientSkip("cannot save output", filename, err)
	}

	if masking {
		maskedPath := MaskedPath(outputPath)
		if err := imaging.Save(compositeMask(canvas, mask), maskedPath); err != nil {
			return r.lenientSkip("cannot save masked output", filename, err)
		}
		result.MaskedPath = maskedPath
	}

	return result, nil
}

// drawBoundary draws the workspace boundary from the image's sidecar file,
// if one exists. Parse failures only abort the boundary step; the already
// drawn annotation boxes are still saved by the caller.
func (r *Renderer) drawBoundary(canvas *image.NRGBA, imagePath string, result *Result) {
	path := BoundaryPath(imagePath)
	if _, err := os.Stat(path); err != nil {
		return
	}

	boundary, err := ParseBoundaryFile(path)
	if err != nil {
		switch {
		case errors.Is(err, ErrBoundaryParts):
			r.logger.Warn("boundary file has too few parts", "file", path)
		case errors.Is(err, ErrBoundarySyntax):
			r.logger.Warn("boundary polygon has a syntax error", "file", path, "error", err)
		case errors.Is(err, ErrBoundaryShape):
			r.logger.Warn("boundary polygon has the wrong shape", "file", path, "error", err)
		default:
			r.logger.Warn("cannot read boundary file", "file", path, "error", err)
		}
		return
	}

	strokeOutline(canvas, boundary.TopLeft, boundary.BottomRight, r.opts.StrokeWidth, r.opts.Palette.Boundary)
	result.BoundaryDrawn = true
}

// lenientSkip downgrades an error to a skipped image under the lenient
// policy, or propagates it in strict mode.
func (r *Renderer) lenientSkip(reason, filename string, err error) (*Result, error) {
	if r.opts.Strict {
		return nil, err
	}
	r.logger.Warn(reason, "file", filename, "error", err)
	return &Result{Skipped: true, SkipReason: fmt.Sprintf("%s: %v", reason, err)}, nil
}

// compositeMask keeps canvas pixels where the mask is nonzero and
// substitutes solid black everywhere else.
func compositeMask(canvas *image.NRGBA, mask *image.Alpha) *image.NRGBA {
	out := image.NewNRGBA(canvas.Bounds())
	fillRect(out, out.Bounds(), color.NRGBA{A: 255})
	draw.DrawMask(out, out.Bounds(), canvas, canvas.Bounds().Min, mask, mask.Bounds().Min, draw.Over)
	return out
}
