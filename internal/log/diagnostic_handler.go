package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// DiagnosticHandler is an slog.Handler that writes human-readable
// single-line diagnostics, for example:
//
//	WARN: cannot find image in metadata, skipping [file=img1.png]
//
// It is safe for concurrent use; render workers log through a shared
// logger.
type DiagnosticHandler struct {
	// level is the minimum level this handler emits.
	level slog.Level

	// attrs holds attributes accumulated via WithAttrs.
	attrs []slog.Attr

	// groups holds group names accumulated via WithGroup. They prefix
	// attribute keys in the output.
	groups []string

	// mu guards writes to out so concurrent records do not interleave.
	mu  *sync.Mutex
	out io.Writer
}

// NewDiagnosticHandler creates a DiagnosticHandler writing to w at the
// given minimum level.
func NewDiagnosticHandler(w io.Writer, level slog.Level) *DiagnosticHandler {
	return &DiagnosticHandler{
		level: level,
		mu:    &sync.Mutex{},
		out:   w,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *DiagnosticHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as a single line and writes it.
func (h *DiagnosticHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Level.String())
	sb.WriteString(": ")
	sb.WriteString(r.Message)

	var parts []string
	for _, a := range h.attrs {
		parts = h.appendAttr(parts, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = h.appendAttr(parts, a)
		return true
	})
	if len(parts) > 0 {
		sb.WriteString(" [")
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString("]")
	}
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

// appendAttr flattens an attribute, expanding groups with dotted keys.
func (h *DiagnosticHandler) appendAttr(parts []string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			ga.Key = a.Key + "." + ga.Key
			parts = h.appendAttr(parts, ga)
		}
		return parts
	}

	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	return append(parts, fmt.Sprintf("%s=%v", key, a.Value))
}

// WithAttrs returns a new handler with the given attributes added.
func (h *DiagnosticHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler with the given group name.
func (h *DiagnosticHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// NewLogger creates the diagnostic logger for a run. Verbose lowers the
// level to Debug, quiet raises it to Error; verbose wins when both are
// set.
func NewLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(NewDiagnosticHandler(w, level))
}
