package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

const (
	// DefaultDirRetries is how many times directory creation is attempted
	// before giving up.
	DefaultDirRetries = 3

	// DefaultDirRetryDelay is the pause between directory creation attempts.
	DefaultDirRetryDelay = time.Second
)

// EnsureDir creates dir, retrying on failure with a fixed delay between
// attempts. A directory that already exists counts as success. When every
// attempt fails the last error is wrapped in ErrDirectoryCreate.
func EnsureDir(dir string, retries int, delay time.Duration, logger *slog.Logger) error {
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		lastErr = os.MkdirAll(dir, 0750)
		if lastErr == nil {
			return nil
		}
		logger.Warn("directory creation failed",
			"dir", dir,
			"attempt", attempt,
			"retries", retries,
			"error", lastErr,
		)
		if attempt < retries {
			time.Sleep(delay)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, dir, lastErr)
}
