package render

import "errors"

// Sub-item errors. All of these are non-fatal to the image being rendered
// regardless of the tolerance policy: they skip the offending annotation or
// the boundary-drawing step and surface as diagnostics.
var (
	// ErrMalformedAnnotation marks an annotation whose bbox is missing or
	// carries fewer than four numbers.
	ErrMalformedAnnotation = errors.New("annotation has no usable bbox")

	// ErrBoundaryParts is reported when a sidecar boundary file has fewer
	// than two semicolon-separated parts.
	ErrBoundaryParts = errors.New("boundary file does not contain enough parts separated by semicolons")

	// ErrBoundarySyntax is reported when the polygon part of a boundary
	// file cannot be parsed as a nested number list.
	ErrBoundarySyntax = errors.New("boundary polygon has a syntax error")

	// ErrBoundaryShape is reported when the polygon parses but is not a
	// list of exactly four two-number points.
	ErrBoundaryShape = errors.New("boundary polygon is not a valid nested list of four points")
)
