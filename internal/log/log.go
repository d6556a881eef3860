// Package log is the process-wide logging seam used by every
// collaborator around the tabulation engine (the engine itself stays
// mute, per the engine's own doc comment). It mirrors the teacher
// service's internal/log seam (vote/run.go calls log.Info/log.Debug)
// but is backed directly by zerolog instead of an internal shim, since
// this repo has no multi-service log-aggregation contract to honor.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger = newDefault()

func newDefault() zerolog.Logger {
	var w io.Writer = os.Stderr
	if isTerminal(os.Stderr) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// SetLevel adjusts the process-wide minimum log level, e.g. from a
// `--verbose` CLI flag.
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	logger = logger.Level(lvl)
	return nil
}

// Info logs a formatted informational message.
func Info(format string, args ...any) {
	logger.Info().Msgf(format, args...)
}

// Warn logs a formatted warning, used by the ingest layer for
// per-ballot oddities the engine itself never reports (spec §7: "The
// ingest layer outside the core may additionally warn on format
// oddities, but the engine itself is mute").
func Warn(format string, args ...any) {
	logger.Warn().Msgf(format, args...)
}

// Error logs a formatted error message.
func Error(format string, args ...any) {
	logger.Error().Msgf(format, args...)
}

// Debug logs a formatted debug message.
func Debug(format string, args ...any) {
	logger.Debug().Msgf(format, args...)
}

// Round logs one round's headline numbers at info level, giving the
// CLI a one-line-per-round trace distinct from the full human report.
func Round(n int, threshold uint64, eliminated []string) {
	logger.Info().
		Int("round", n).
		Uint64("threshold", threshold).
		Strs("eliminated", eliminated).
		Msg("round complete")
}
