package report

import "io"

// Writer outputs a run report to a destination in some format.
type Writer interface {
	// Write outputs the report. It returns the number of bytes written
	// and any error encountered.
	Write(report *RunReport) (int, error)
}

// MultiWriter writes a report to several Writers in turn, for example a
// terminal summary plus a JSON file. It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers and returns the
// total bytes written.
func (m *MultiWriter) Write(report *RunReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds the output destination shared by the writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
