package report

import (
	"time"

	"github.com/vision-tools/cocoviz/internal/pipeline"
)

// Status classifies what happened to a single image.
type Status string

const (
	// StatusRendered means an annotated output file was written.
	StatusRendered Status = "rendered"

	// StatusSkipped means the image was a no-op under the lenient policy.
	StatusSkipped Status = "skipped"

	// StatusFailed means rendering stopped with an error.
	StatusFailed Status = "failed"
)

// ImageResult is the per-image line item of a run report.
type ImageResult struct {
	// ImagePath is the source image.
	ImagePath string `json:"image_path"`

	// OutputPath is the annotated output, empty when nothing was written.
	OutputPath string `json:"output_path,omitempty"`

	// MaskedPath is the masked sibling output, when masking was enabled.
	MaskedPath string `json:"masked_path,omitempty"`

	// Status classifies the outcome.
	Status Status `json:"status"`

	// Detail carries the skip reason or failure message.
	Detail string `json:"detail,omitempty"`

	// BoxesDrawn counts annotation rectangles drawn on the image.
	BoxesDrawn int `json:"boxes_drawn"`

	// MalformedAnnotations counts matching annotations with unusable bboxes.
	MalformedAnnotations int `json:"malformed_annotations"`

	// BoundaryDrawn is true when a sidecar boundary rectangle was drawn.
	BoundaryDrawn bool `json:"boundary_drawn"`
}

// NewImageResult converts a pipeline outcome into a report line item.
func NewImageResult(o pipeline.Outcome) ImageResult {
	r := ImageResult{ImagePath: o.ImagePath}

	if o.Err != nil {
		r.Status = StatusFailed
		r.Detail = o.Err.Error()
		return r
	}

	if o.Result.Skipped {
		r.Status = StatusSkipped
		r.Detail = o.Result.SkipReason
		return r
	}

	r.Status = StatusRendered
	r.OutputPath = o.Result.OutputPath
	r.MaskedPath = o.Result.MaskedPath
	r.BoxesDrawn = o.Result.BoxesDrawn
	r.MalformedAnnotations = o.Result.MalformedAnnotations
	r.BoundaryDrawn = o.Result.BoundaryDrawn
	return r
}

// RunReport aggregates the results of one rendering run.
type RunReport struct {
	// InputPath is the input image directory or file.
	InputPath string `json:"input_path"`

	// OutputPath is the output directory or file.
	OutputPath string `json:"output_path"`

	// MetadataPath is the annotation metadata file that drove the run.
	MetadataPath string `json:"metadata_path"`

	// Workers is the number of render workers used.
	Workers int `json:"workers"`

	// Strict reports whether the strict failure policy was active.
	Strict bool `json:"strict"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total run duration, set by Finish.
	Elapsed time.Duration `json:"elapsed_ns"`

	// Rendered, Skipped, and Failed count results by status.
	Rendered int `json:"rendered"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`

	// Results lists every image in processing order.
	Results []ImageResult `json:"results"`
}

// NewRunReport starts a report for a run over the given paths.
func NewRunReport(input, output, metadata string) *RunReport {
	return &RunReport{
		InputPath:    input,
		OutputPath:   output,
		MetadataPath: metadata,
		StartedAt:    time.Now(),
	}
}

// Add appends a result and updates the status counts.
func (r *RunReport) Add(res ImageResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusRendered:
		r.Rendered++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// AddOutcomes appends every pipeline outcome to the report.
func (r *RunReport) AddOutcomes(outcomes []pipeline.Outcome) {
	for _, o := range outcomes {
		r.Add(NewImageResult(o))
	}
}

// Finish records the elapsed time of the run.
func (r *RunReport) Finish() {
	r.Elapsed = time.Since(r.StartedAt)
}

// Total returns the number of images the run looked at.
func (r *RunReport) Total() int {
	return len(r.Results)
}
