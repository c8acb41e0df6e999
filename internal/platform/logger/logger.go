package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Outside production the output is the
// human-readable console writer.
func New(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
