// Package logging provides leveled logging for the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level represents a logging level.
type Level int

// Levels, least to most severe.
const (
	LevelDebug Level = iota
	LevelVerbose
	LevelInfo
	LevelWarning
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelVerbose:
		return "VERBOSE"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) prefix(colored bool) string {
	if !colored {
		return fmt.Sprintf("[%s] ", l.String())
	}
	switch l {
	case LevelDebug:
		return color.HiBlackString("[DEBUG] ")
	case LevelVerbose:
		return color.CyanString("[VERBOSE] ")
	case LevelInfo:
		return color.BlueString("[INFO] ")
	case LevelWarning:
		return color.YellowString("[WARNING] ")
	case LevelError:
		return color.RedString("[ERROR] ")
	default:
		return ""
	}
}

// Logger provides leveled logging. Messages at Warning and above go to the
// error writer.
type Logger struct {
	mu      sync.Mutex
	level   Level
	out     io.Writer
	errOut  io.Writer
	colored bool
}

// New creates a Logger writing to stdout/stderr at the given level.
func New(level Level) *Logger {
	return &Logger{
		level:   level,
		out:     os.Stdout,
		errOut:  os.Stderr,
		colored: true,
	}
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetColored enables or disables colored output.
func (l *Logger) SetColored(colored bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.colored = colored
	color.NoColor = !colored
}

// SetOutput sets the writer for non-error messages.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// SetErrorOutput sets the writer for warning and error messages.
func (l *Logger) SetErrorOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errOut = w
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	out := l.out
	if level >= LevelWarning {
		out = l.errOut
	}

	fmt.Fprintf(out, "%s%s\n", level.prefix(l.colored), fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Verbose logs a verbose message.
func (l *Logger) Verbose(format string, args ...interface{}) {
	l.log(LevelVerbose, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warning logs a warning message.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(LevelWarning, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Default logger instance.
var defaultLogger = New(LevelInfo)

// Default returns the package-level logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefaultLevel sets the default logger level.
func SetDefaultLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetDefaultColored enables or disables colored output on the default logger.
func SetDefaultColored(colored bool) {
	defaultLogger.SetColored(colored)
}

// Debug logs a debug message to the default logger.
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Verbose logs a verbose message to the default logger.
func Verbose(format string, args ...interface{}) {
	defaultLogger.Verbose(format, args...)
}

// Info logs an informational message to the default logger.
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warning logs a warning message to the default logger.
func Warning(format string, args ...interface{}) {
	defaultLogger.Warning(format, args...)
}

// Error logs an error message to the default logger.
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}
