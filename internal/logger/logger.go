package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a log.Level
func ParseLevel(name string) (log.Level, error) {
	return log.ParseLevel(name)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path string, cardTag, deckKey string) {
	l.Debug("config loaded",
		"path", path,
		"card_tag", cardTag,
		"deck_key", deckKey)
}

// FileMigrated logs a successful file migration
func (l *Logger) FileMigrated(source, dest string, cards int, deckTag string) {
	l.Info("file migrated",
		"source", source,
		"dest", dest,
		"cards", cards,
		"deck_tag", deckTag)
}

// FileSkipped logs when a file is skipped
func (l *Logger) FileSkipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// BatchStarted logs the start of a directory migration
func (l *Logger) BatchStarted(runID, srcDir, dstDir string) {
	l.Info("batch started",
		"run_id", runID,
		"src_dir", srcDir,
		"dst_dir", dstDir)
}

// BatchCompleted logs the completion of a directory migration
func (l *Logger) BatchCompleted(runID string, migrated, skipped, errors int, duration time.Duration) {
	l.Info("batch completed",
		"run_id", runID,
		"files_migrated", migrated,
		"files_skipped", skipped,
		"errors", errors,
		"duration", duration.Round(time.Millisecond))
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}
