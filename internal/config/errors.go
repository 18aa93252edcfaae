package config

import "errors"

// Configuration validation errors. These are returned by Config.Validate()
// so callers can use errors.Is() for programmatic handling while still
// getting a human-readable message.
var (
	// ErrNoInput is returned when no input image or directory is specified.
	ErrNoInput = errors.New("no input specified: provide an image file or directory with --input")

	// ErrNoOutput is returned when no output path is specified.
	ErrNoOutput = errors.New("no output specified: provide an output path with --output")

	// ErrNegativeMaskMargin is returned when the mask margin is negative.
	// Use 0 to disable masking.
	ErrNegativeMaskMargin = errors.New("invalid mask margin: must be non-negative")

	// ErrInvalidWorkers is returned when the worker count is negative.
	// Use 0 to size the pool from the CPU count.
	ErrInvalidWorkers = errors.New("invalid worker count: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidDirRetries is returned when the directory retry count is
	// not positive.
	ErrInvalidDirRetries = errors.New("invalid directory retries: must be positive")

	// ErrInvalidColor is returned when a color option is not a parseable
	// hex color such as "#ff0000".
	ErrInvalidColor = errors.New("invalid color: must be a hex color like #ff0000")
)
