// Package config provides the run configuration for cocoviz.
// It defines the options controlling input discovery, rendering, masking,
// worker fan-out, and report generation, plus the optional .cocoviz
// defaults file.
package config
