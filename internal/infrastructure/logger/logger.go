package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/haxorport/postman-rewrite/internal/domain/port"
)

// TimeFormat is the timestamp layout of console output
const TimeFormat = "2006-01-02 15:04:05.000"

// ParseLevel converts a string to a zerolog level
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is an implementation of port.Logger on top of zerolog
type Logger struct {
	logger  zerolog.Logger
	console io.Writer
	file    *lumberjack.Logger
}

// NewLogger creates a new Logger instance writing human readable lines to writer
func NewLogger(writer io.Writer, level string) *Logger {
	console := zerolog.ConsoleWriter{Out: writer, TimeFormat: TimeFormat, NoColor: true}
	return &Logger{
		logger:  newZerolog(console, ParseLevel(level)),
		console: console,
	}
}

func newZerolog(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// SetLevel changes the logging level
func (l *Logger) SetLevel(level string) {
	l.logger = l.logger.Level(ParseLevel(level))
}

// SetFile additionally writes JSON lines to a rotated log file
func (l *Logger) SetFile(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}
	if l.file != nil {
		l.file.Close()
	}

	l.file = &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
	l.logger = newZerolog(zerolog.MultiLevelWriter(l.console, l.file), l.logger.GetLevel())
	return nil
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// With returns a child logger sharing the writers of l
func (l *Logger) With(key, value string) port.Logger {
	return &Logger{
		logger:  l.logger.With().Str(key, value).Logger(),
		console: l.console,
	}
}

// Close closes the log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Ensure Logger implements port.Logger
var _ port.Logger = (*Logger)(nil)
