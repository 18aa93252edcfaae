package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vision-tools/cocoviz/internal/coco"
	"github.com/vision-tools/cocoviz/internal/config"
	"github.com/vision-tools/cocoviz/internal/history"
	"github.com/vision-tools/cocoviz/internal/log"
	"github.com/vision-tools/cocoviz/internal/pipeline"
	"github.com/vision-tools/cocoviz/internal/render"
	"github.com/vision-tools/cocoviz/internal/report"
)

// errInputNotFound is returned when the input path does not exist.
var errInputNotFound = errors.New("input path does not exist")

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw annotations onto images",
		Long: `Render draws COCO annotations onto images.

With a directory input, every image in the directory and its
subdirectories is processed and the directory layout is mirrored under
the output root. With a file input, the single image is rendered to the
output path.

The annotation metadata defaults to coco.json inside the input directory
(or next to a single input image). A sidecar <image>.txt file next to an
image adds a workspace boundary rectangle. A positive mask margin also
writes a <name>_masked.jpg variant that blacks out everything outside
the annotated regions.

Examples:
  # Render a directory tree
  cocoviz render -i dataset/images -o dataset/annotated

  # Render one image with explicit metadata
  cocoviz render -i photo.png -o out/photo.png -c annotations.json

  # Masked variants with a 10 px margin, strict failure policy
  cocoviz render -i images -o out -m 10 --strict

  # Write a JSON report and store the run in history
  cocoviz render -i images -o out --json --report-file run.json --save-history`,
		Args: cobra.NoArgs,
		RunE: runRenderCmd,
	}

	// Input and output flags
	cmd.Flags().StringP("input", "i", "", "Input image file or directory (required)")
	cmd.Flags().StringP("output", "o", "", "Output file or directory root (required)")
	cmd.Flags().StringP("coco", "c", "", "Annotation metadata file (default: coco.json next to the input)")

	// Render behavior flags
	cmd.Flags().IntP("mask-margin", "m", 0, "Mask margin in pixels; 0 disables the masked variant")
	cmd.Flags().IntP("workers", "w", 0, "Render workers for directory input; 0 sizes from the CPU count")
	cmd.Flags().BoolP("strict", "s", false, "Stop on the first failure instead of skipping")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress warnings, show errors only")

	// Color flags
	cmd.Flags().String("box-color", render.DefaultBoxColor, "Hex color for annotation boxes and labels backgrounds")
	cmd.Flags().String("boundary-color", render.DefaultBoundaryColor, "Hex color for the sidecar boundary rectangle")
	cmd.Flags().String("label-color", render.DefaultLabelColor, "Hex color for label text")

	// Configuration file
	cmd.Flags().String("config", "", "Defaults file path (default: .cocoviz in current or home directory)")

	// Report flags
	cmd.Flags().Bool("json", false, "Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false, "Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().String("report-file", "", "Write the report to a file instead of stdout")

	// History flags
	cmd.Flags().Bool("save-history", false, "Store the run report in the history database")
	cmd.Flags().String("history-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

// runRenderCmd executes the render command.
func runRenderCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose, cfg.Quiet)
	slog.SetDefault(logger)

	// Handle interrupt signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runRender(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// defaults file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.InputPath, err = cmd.Flags().GetString("input")
	if err != nil {
		return nil, err
	}
	cfg.OutputPath, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.CocoPath, err = cmd.Flags().GetString("coco")
	if err != nil {
		return nil, err
	}
	cfg.MaskMargin, err = cmd.Flags().GetInt("mask-margin")
	if err != nil {
		return nil, err
	}
	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}
	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}
	cfg.Quiet, err = cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	cfg.BoxColor, err = cmd.Flags().GetString("box-color")
	if err != nil {
		return nil, err
	}
	cfg.BoundaryColor, err = cmd.Flags().GetString("boundary-color")
	if err != nil {
		return nil, err
	}
	cfg.LabelColor, err = cmd.Flags().GetString("label-color")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("report-file")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory, err = cmd.Flags().GetBool("save-history")
	if err != nil {
		return nil, err
	}
	historyDir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return nil, err
	}
	if historyDir != "" {
		cfg.HistoryDir = historyDir
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// Load defaults from the config file. An explicitly given path must
	// exist; the implicit search may come up empty.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// runRender executes the rendering run.
func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", errInputNotFound, cfg.InputPath)
		}
		return fmt.Errorf("cannot access input: %w", err)
	}
	cfg.SingleImage = !info.IsDir()

	cocoPath := cfg.ResolveCocoPath()
	ds, err := coco.Load(cocoPath)
	if err != nil {
		return err
	}
	logger.Debug("metadata loaded",
		"path", cocoPath,
		"images", len(ds.Images),
		"annotations", len(ds.Annotations),
		"categories", len(ds.Categories),
	)
	if !ds.HasImages() {
		logger.Warn("metadata has no images key, every render will be skipped", "path", cocoPath)
	} else if !ds.HasAnnotations() {
		logger.Warn("metadata has no annotations key, every render will be skipped", "path", cocoPath)
	}

	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	renderer, err := render.New(ds, render.Options{
		MaskMargin: cfg.MaskMargin,
		Strict:     cfg.Strict,
		Palette:    palette,
	}, logger)
	if err != nil {
		return err
	}

	runReport := report.NewRunReport(cfg.InputPath, cfg.OutputPath, cocoPath)
	runReport.Strict = cfg.Strict

	var runErr error
	if cfg.SingleImage {
		runReport.Workers = 1
		runErr = renderSingle(ctx, cfg, renderer, runReport, logger)
	} else {
		runErr = renderBulk(ctx, cfg, renderer, runReport, logger)
	}
	runReport.Finish()

	if err := outputReport(cfg, runReport); err != nil {
		logger.Error("report failed", "error", err)
	}
	if err := saveRunReport(ctx, cfg, runReport, logger); err != nil {
		logger.Error("failed to save run to history", "error", err)
	}

	return runErr
}

// renderSingle renders one image to the configured output path.
func renderSingle(ctx context.Context, cfg *config.Config, renderer *render.Renderer, runReport *report.RunReport, logger *slog.Logger) error {
	outDir := filepath.Dir(cfg.OutputPath)
	if outDir != "" && outDir != "." {
		if err := pipeline.EnsureDir(outDir, cfg.DirRetries, cfg.DirRetryDelay, logger); err != nil {
			return err
		}
	}

	res, err := renderer.Render(ctx, cfg.InputPath, cfg.OutputPath)
	runReport.Add(report.NewImageResult(pipeline.Outcome{
		ImagePath:  cfg.InputPath,
		OutputPath: cfg.OutputPath,
		Result:     res,
		Err:        err,
	}))
	return err
}

// renderBulk fans the input directory out across the worker pool.
func renderBulk(ctx context.Context, cfg *config.Config, renderer *render.Renderer, runReport *report.RunReport, logger *slog.Logger) error {
	proc := pipeline.New(renderer,
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithLogger(logger),
		pipeline.WithDirRetry(cfg.DirRetries, cfg.DirRetryDelay),
	)
	runReport.Workers = proc.Workers()

	outcomes, err := proc.Process(ctx, cfg.InputPath, cfg.OutputPath)
	runReport.AddOutcomes(outcomes)
	return err
}

// outputReport writes the run report in the requested format.
func outputReport(cfg *config.Config, runReport *report.RunReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create report directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(runReport)
	return err
}

// saveRunReport stores the run in the history database when enabled.
func saveRunReport(ctx context.Context, cfg *config.Config, runReport *report.RunReport, logger *slog.Logger) error {
	if !cfg.SaveHistory {
		return nil
	}

	db, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return err
	}
	logger.Info("run saved to history", "id", id, "dir", cfg.HistoryDir)
	return nil
}
