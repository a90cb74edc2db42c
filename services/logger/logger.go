package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Level is the minimum severity a logger writes
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	ErrorLevel
)

// ParseLevel maps "debug", "info" and "error"; anything else is InfoLevel
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger defines the logging methods services depend on
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger implements Logger on top of the log package
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger logs to stderr
func NewDefaultLogger(level Level) *DefaultLogger {
	return NewWriterLogger(level, os.Stderr)
}

// NewWriterLogger logs to w
func NewWriterLogger(level Level, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewFileLogger writes to dir/app-YYYY-MM-DD.log and to stderr
func NewFileLogger(level Level, dir string) (*DefaultLogger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	timestamp := time.Now().Format("2006-01-02")
	logFile, err := os.OpenFile(filepath.Join(dir, fmt.Sprintf("app-%s.log", timestamp)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return NewWriterLogger(level, io.MultiWriter(os.Stderr, logFile)), nil
}

// Info logs informational messages
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		l.out.Output(2, fmt.Sprintf("[INFO] "+format, v...))
	}
}

// Error logs errors
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		l.out.Output(2, fmt.Sprintf("[ERROR] "+format, v...))
	}
}

// Debug logs debug output
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		l.out.Output(2, fmt.Sprintf("[DEBUG] "+format, v...))
	}
}

// Nop discards everything
type Nop struct{}

func (Nop) Info(format string, v ...interface{})  {}
func (Nop) Error(format string, v ...interface{}) {}
func (Nop) Debug(format string, v ...interface{}) {}
