// Package logging adapts zerolog to the domain Logger interface.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ochairo/sbommerge/internal/domain/interfaces"
)

// ZerologLogger implements interfaces.Logger
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewConsoleLogger writes human-readable logs to w at the given level
// ("debug", "info", "warn", "error"). Unknown or empty levels mean info.
func NewConsoleLogger(w io.Writer, level string) *ZerologLogger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}
	logger := zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Str("app", "sbommerge").Logger()
	return NewZerologLogger(logger)
}

// NewZerologLogger wraps an existing zerolog logger
func NewZerologLogger(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Debug logs debug-level messages
func (l *ZerologLogger) Debug(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Info logs informational messages
func (l *ZerologLogger) Info(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Warn logs warning messages
func (l *ZerologLogger) Warn(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// Error logs error messages
func (l *ZerologLogger) Error(msg string, fields ...interfaces.Field) {
	withFields(l.logger.Error(), fields).Msg(msg)
}

// isTerminal reports whether w is an interactive terminal; pipes and files get plain text
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func withFields(event *zerolog.Event, fields []interfaces.Field) *zerolog.Event {
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			event = event.AnErr(f.Key, err)
			continue
		}
		event = event.Interface(f.Key, f.Value)
	}
	return event
}
