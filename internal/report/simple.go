package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose includes the per-image listing instead of just the summary.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-image listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	if w.verbose {
		w.writeResults(&sb, report)
	} else {
		w.writeProblems(&sb, report)
	}

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          RENDER REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Input:    %s\n", report.InputPath))
	sb.WriteString(fmt.Sprintf("Output:   %s\n", report.OutputPath))
	sb.WriteString(fmt.Sprintf("Metadata: %s\n", report.MetadataPath))
	sb.WriteString(fmt.Sprintf("Workers:  %d\n", report.Workers))
	if report.Strict {
		sb.WriteString("Policy:   strict\n")
	} else {
		sb.WriteString("Policy:   lenient\n")
	}
	sb.WriteString(fmt.Sprintf("Elapsed:  %s\n", report.Elapsed.Round(time.Millisecond)))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *RunReport) {
	sb.WriteString(fmt.Sprintf("Images:   %d\n", report.Total()))
	sb.WriteString(fmt.Sprintf("Rendered: %d\n", report.Rendered))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("Failed:   %d\n", report.Failed))
	sb.WriteString("\n")
}

// writeProblems lists only the skipped and failed images.
func (w *SimpleWriter) writeProblems(sb *strings.Builder, report *RunReport) {
	if report.Skipped == 0 && report.Failed == 0 {
		return
	}

	sb.WriteString("Problems:\n")
	for _, res := range report.Results {
		if res.Status == StatusRendered {
			continue
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s", res.Status, res.ImagePath))
		if res.Detail != "" {
			sb.WriteString(": " + res.Detail)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeResults lists every image with its outcome.
func (w *SimpleWriter) writeResults(sb *strings.Builder, report *RunReport) {
	if report.Total() == 0 {
		return
	}

	sb.WriteString("Results:\n")
	for _, res := range report.Results {
		switch res.Status {
		case StatusRendered:
			sb.WriteString(fmt.Sprintf("  [%s] %s -> %s (%d boxes", res.Status, res.ImagePath, res.OutputPath, res.BoxesDrawn))
			if res.MalformedAnnotations > 0 {
				sb.WriteString(fmt.Sprintf(", %d malformed", res.MalformedAnnotations))
			}
			sb.WriteString(")\n")
			if res.MaskedPath != "" {
				sb.WriteString(fmt.Sprintf("           masked: %s\n", res.MaskedPath))
			}
		default:
			sb.WriteString(fmt.Sprintf("  [%s] %s", res.Status, res.ImagePath))
			if res.Detail != "" {
				sb.WriteString(": " + res.Detail)
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}
