package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".cocoviz"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .cocoviz defaults file. All
// fields are pointers so an absent key can be told apart from a zero
// value.
type File struct {
	// MaskMargin is the default mask margin in pixels.
	MaskMargin *int `yaml:"maskMargin,omitempty"`

	// Workers is the default worker count for bulk runs.
	Workers *int `yaml:"workers,omitempty"`

	// Strict enables the strict failure policy by default.
	Strict *bool `yaml:"strict,omitempty"`

	// BoxColor, BoundaryColor, and LabelColor are default hex colors.
	BoxColor      *string `yaml:"boxColor,omitempty"`
	BoundaryColor *string `yaml:"boundaryColor,omitempty"`
	LabelColor    *string `yaml:"labelColor,omitempty"`

	// SaveHistory stores run reports in the history database by default.
	SaveHistory *bool `yaml:"saveHistory,omitempty"`

	// HistoryDir overrides the history database directory.
	HistoryDir *string `yaml:"historyDir,omitempty"`

	// DirRetries and DirRetryDelay override the output directory
	// creation retry policy.
	DirRetries    *int           `yaml:"dirRetries,omitempty"`
	DirRetryDelay *time.Duration `yaml:"dirRetryDelay,omitempty"`
}

// LoadConfigFile loads defaults from a YAML file. If the file does not
// exist, it returns ErrConfigNotFound; callers decide whether that is
// fatal based on whether the path was given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .cocoviz in the current directory
// 3. Look for .cocoviz in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply copies the file's values into c, but only where c still holds
// the built-in default. Explicit CLI flags therefore always win over the
// defaults file.
func (cf *File) Apply(c *Config) {
	defaults := NewConfig()

	if cf.MaskMargin != nil && c.MaskMargin == defaults.MaskMargin {
		c.MaskMargin = *cf.MaskMargin
	}
	if cf.Workers != nil && c.Workers == defaults.Workers {
		c.Workers = *cf.Workers
	}
	if cf.Strict != nil && c.Strict == defaults.Strict {
		c.Strict = *cf.Strict
	}
	if cf.BoxColor != nil && c.BoxColor == defaults.BoxColor {
		c.BoxColor = *cf.BoxColor
	}
	if cf.BoundaryColor != nil && c.BoundaryColor == defaults.BoundaryColor {
		c.BoundaryColor = *cf.BoundaryColor
	}
	if cf.LabelColor != nil && c.LabelColor == defaults.LabelColor {
		c.LabelColor = *cf.LabelColor
	}
	if cf.SaveHistory != nil && c.SaveHistory == defaults.SaveHistory {
		c.SaveHistory = *cf.SaveHistory
	}
	if cf.HistoryDir != nil && c.HistoryDir == defaults.HistoryDir {
		c.HistoryDir = *cf.HistoryDir
	}
	if cf.DirRetries != nil && c.DirRetries == defaults.DirRetries {
		c.DirRetries = *cf.DirRetries
	}
	if cf.DirRetryDelay != nil && c.DirRetryDelay == defaults.DirRetryDelay {
		c.DirRetryDelay = *cf.DirRetryDelay
	}
}
