// Package log provides the slog handler used for terminal diagnostics.
//
// Rendering runs emit many per-image warnings (missing metadata entries,
// malformed annotations, unreadable boundary files). DiagnosticHandler
// prints them as plain single lines rather than logfmt records, so the
// output of a bulk run stays readable in a terminal.
//
// Level policy: warnings and errors are always shown, info and debug only
// with the verbose flag, and quiet suppresses everything below error.
package log
