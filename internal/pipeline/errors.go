package pipeline

import "errors"

// ErrDirectoryCreate is returned when an output directory cannot be
// created after all retry attempts.
var ErrDirectoryCreate = errors.New("pipeline: cannot create output directory")
