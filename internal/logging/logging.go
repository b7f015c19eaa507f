package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup initializes the process logger. "text" is a human-friendly console
// for interactive runs; anything else produces structured JSON tagged with
// the app name for log aggregation.
func Setup(format string) zerolog.Logger {
	if format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Str("app", "loclink").Logger()
}
