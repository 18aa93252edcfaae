package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown, suitable
// for run logs shared in documentation or pull requests.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeProblems(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the run parameters table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *RunReport) {
	md.H1("Render Report")
	md.PlainText("")

	policy := "lenient"
	if report.Strict {
		policy = "strict"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Input", "`" + report.InputPath + "`"},
			{"Output", "`" + report.OutputPath + "`"},
			{"Metadata", "`" + report.MetadataPath + "`"},
			{"Workers", strconv.Itoa(report.Workers)},
			{"Policy", policy},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
		},
	})
	md.PlainText("")
}

// writeSummary writes the status counts and a matching alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{"Rendered", strconv.Itoa(report.Rendered)},
			{"Skipped", strconv.Itoa(report.Skipped)},
			{"Failed", strconv.Itoa(report.Failed)},
			{"**Total**", "**" + strconv.Itoa(report.Total()) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case report.Failed > 0:
		md.Warningf("%d image(s) failed to render.", report.Failed)
	case report.Skipped > 0:
		md.Note("Some images were skipped. See the problem list below.")
	case report.Rendered > 0:
		md.Tip("Every image rendered successfully.")
	default:
		md.Note("No images were found to process.")
	}
	md.PlainText("")
}

// writeProblems writes a table of skipped and failed images.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, report *RunReport) {
	if report.Skipped == 0 && report.Failed == 0 {
		return
	}

	md.H2("Problems")
	md.PlainText("")

	var rows [][]string
	for _, res := range report.Results {
		if res.Status == StatusRendered {
			continue
		}
		rows = append(rows, []string{
			string(res.Status),
			"`" + truncateString(res.ImagePath, 60) + "`",
			truncateString(res.Detail, 70),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Image", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
