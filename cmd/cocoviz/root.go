// Package main provides the entry point for the cocoviz CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vision-tools/cocoviz/internal/coco"
	"github.com/vision-tools/cocoviz/internal/pipeline"
)

// NewRootCmd creates the root command for cocoviz.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cocoviz",
		Short: "Render COCO annotations onto images",
		Long: `cocoviz draws COCO-format object detection annotations onto images.

Given an annotation metadata file, it renders bounding boxes and category
labels, optionally a masked variant that blacks out everything outside
the annotated regions, and workspace boundary rectangles from sidecar
files. A directory input processes every image in the tree in parallel.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Exit codes: 1 for configuration
// problems, 2 for a missing input, 3 for missing or invalid annotation
// metadata, 4 for output directory failures.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errInputNotFound):
		return 2
	case errors.Is(err, coco.ErrMetadataMissing):
		return 3
	case errors.Is(err, pipeline.ErrDirectoryCreate):
		return 4
	default:
		return 1
	}
}
