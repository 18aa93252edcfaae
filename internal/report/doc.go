// Package report models the outcome of a rendering run and writes it in
// text, JSON, or Markdown form.
//
// A RunReport aggregates per-image results with rendered/skipped/failed
// counts. Writers share a single interface so a run can emit to the
// terminal and a file at the same time through MultiWriter.
package report
