package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
)

// Logger is a simple logger for the application. When constructed with a
// file path it tees every line to that file as well, so faults are
// inspectable after the process is gone.
type Logger struct {
	infoLog  *log.Logger
	errorLog *log.Logger
	file     *os.File
}

// NewLogger creates a logger writing to stdout/stderr only.
func NewLogger() *Logger {
	return &Logger{
		infoLog:  log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLog: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
	}
}

// NewFileLogger creates a logger that additionally appends to the log file
// at path, creating parent directories as needed.
func NewFileLogger(path string) (*Logger, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Logger{
		infoLog:  log.New(io.MultiWriter(os.Stdout, f), "INFO: ", log.Ldate|log.Ltime|log.Lshortfile),
		errorLog: log.New(io.MultiWriter(os.Stderr, f), "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile),
		file:     f,
	}, nil
}

// Info logs an informational message
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLog.Printf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLog.Printf(format, v...)
}

// Panic logs a recovered panic value with its stack trace. It is called
// from the HTTP recovery middleware and from the process's last-resort
// recover, so the fault reaches the persistent log before anything exits.
func (l *Logger) Panic(v interface{}) {
	l.errorLog.Printf("PANIC: %v\n%s", v, debug.Stack())
	if l.file != nil {
		l.file.Sync()
	}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
