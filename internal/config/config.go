package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/vision-tools/cocoviz/internal/pipeline"
	"github.com/vision-tools/cocoviz/internal/render"
)

// Default configuration values.
const (
	// DefaultMetadataFile is the annotation file looked up next to the
	// input when --coco is not given.
	DefaultMetadataFile = "coco.json"

	// AppName is the application name used for XDG directory paths.
	AppName = "cocoviz"
)

// Config holds all configuration options for a rendering run. It is
// populated from CLI flags and the optional defaults file, then passed
// through the application rather than kept in global state.
type Config struct {
	// InputPath is the image file (single mode) or directory (bulk mode)
	// to process.
	InputPath string

	// OutputPath is the output file (single mode) or directory root
	// (bulk mode).
	OutputPath string

	// CocoPath is the annotation metadata file. When empty it defaults
	// to coco.json next to the input; see ResolveCocoPath.
	CocoPath string

	// SingleImage is true when InputPath names a file rather than a
	// directory. It is derived from the filesystem, not set by a flag.
	SingleImage bool

	// MaskMargin is the padding in pixels around each annotation in the
	// masked output. Zero disables the masked variant.
	MaskMargin int

	// Workers is the number of render workers for bulk runs. Zero sizes
	// the pool from the CPU count.
	Workers int

	// Strict stops the run on the first failure instead of skipping.
	Strict bool

	// Verbose enables debug-level diagnostics.
	Verbose bool

	// Quiet suppresses everything below error level.
	Quiet bool

	// BoxColor, BoundaryColor, and LabelColor are hex colors for the
	// annotation outlines, the sidecar boundary rectangle, and the label
	// text.
	BoxColor      string
	BoundaryColor string
	LabelColor    string

	// JSONReport and MarkdownReport select the report format. At most
	// one may be set; neither means the plain text summary.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// SaveHistory stores the run report in the history database.
	SaveHistory bool

	// HistoryDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	HistoryDir string

	// DirRetries and DirRetryDelay control output directory creation
	// retries during bulk runs.
	DirRetries    int
	DirRetryDelay time.Duration

	// ConfigFilePath is the path to the defaults file. If empty, the
	// tool searches for .cocoviz in the current directory and then in
	// the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BoxColor:      render.DefaultBoxColor,
		BoundaryColor: render.DefaultBoundaryColor,
		LabelColor:    render.DefaultLabelColor,
		HistoryDir:    XDGDataDir(),
		DirRetries:    pipeline.DefaultDirRetries,
		DirRetryDelay: pipeline.DefaultDirRetryDelay,
	}
}

// XDGDataDir returns the XDG data directory for cocoviz.
// On Linux: ~/.local/share/cocoviz
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ResolveCocoPath returns the metadata file for the run: the explicit
// --coco path when given, otherwise coco.json inside the input directory
// (bulk mode) or next to the input image (single mode).
func (c *Config) ResolveCocoPath() string {
	if c.CocoPath != "" {
		return c.CocoPath
	}
	if c.SingleImage {
		return filepath.Join(filepath.Dir(c.InputPath), DefaultMetadataFile)
	}
	return filepath.Join(c.InputPath, DefaultMetadataFile)
}

// Palette builds the render palette from the configured colors.
func (c *Config) Palette() (render.Palette, error) {
	p, err := render.ParsePalette(c.BoxColor, c.BoundaryColor, c.LabelColor)
	if err != nil {
		return render.Palette{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	return p, nil
}

// Validate checks if the configuration is valid. It returns the first
// error found; fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return ErrNoInput
	}
	if c.OutputPath == "" {
		return ErrNoOutput
	}
	if c.MaskMargin < 0 {
		return ErrNegativeMaskMargin
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.DirRetries <= 0 {
		return ErrInvalidDirRetries
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}
