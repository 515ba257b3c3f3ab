// Package logging configures the zerolog logger shared by every sdk-lints
// command. Diagnostics go to stderr so stdout stays reserved for reports.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// EnvLevel overrides the log level when set (trace, debug, info, warn, error).
const EnvLevel = "SDK_LINTS_LOG_LEVEL"

// Logger wraps zerolog.Logger
type Logger struct {
	logger zerolog.Logger
}

// Options controls logger construction.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// Plain disables console colors.
	Plain bool
	// Out defaults to os.Stderr.
	Out io.Writer
}

// New creates a console logger. The level defaults to warn, drops to debug
// with Verbose, and is overridden by SDK_LINTS_LOG_LEVEL.
func New(opts Options) *Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := zerolog.WarnLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	if env := strings.TrimSpace(os.Getenv(EnvLevel)); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	writer := zerolog.ConsoleWriter{Out: out, NoColor: opts.Plain, TimeFormat: "15:04:05"}
	return &Logger{logger: zerolog.New(writer).Level(level).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// Debugf logs a debug message with formatting. A nil Logger discards.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Debug().Msgf(format, args...)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Info().Msgf(format, args...)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Warn().Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error) {
	if l == nil {
		return
	}
	l.logger.Error().Err(err).Msg(msg)
}

// With creates a child logger with an additional field
func (l *Logger) With(key string, value any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}
