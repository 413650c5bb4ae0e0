// Package log builds the application logger.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing JSON lines to the given file, creating it if
// needed and appending otherwise. When enabled is false the returned logger
// discards everything and the closer is a no-op.
func New(file string, enabled bool) (zerolog.Logger, io.Closer, error) {
	if !enabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).With().
		Timestamp().
		Str("service", "ytscribe").
		Logger()

	return logger, f, nil
}
