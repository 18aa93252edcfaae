package coco

import "errors"

// Metadata errors.
// These are package-level sentinel errors so that callers can classify
// failures with errors.Is while still seeing a human-readable message with
// the offending path attached via wrapping.
var (
	// ErrMetadataMissing is returned when the metadata file does not exist
	// or cannot be parsed as JSON. In bulk mode this aborts the whole run
	// because the metadata is shared by every image.
	ErrMetadataMissing = errors.New("metadata missing or unreadable")

	// ErrImageNotFound is returned by strict lookups when a filename has no
	// entry in the dataset's images list (or the list is absent entirely).
	ErrImageNotFound = errors.New("image not found in metadata")
)
