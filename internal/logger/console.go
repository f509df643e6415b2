// Package logger provides leveled console logging for seqcheck.
//
// The ConsoleLogger writes timestamped, optionally colorized messages and
// filters them by level. Implementations are thread-safe; the check command
// uses one logger for the verbose scan chatter ("Excluding ...",
// "Processing ...") so that diagnostic output never interleaves mid-line.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs messages to a writer with [HH:MM:SS] timestamps and
// thread safety. It supports log level filtering to control verbosity.
// Color output is automatically enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); empty or
// invalid levels default to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		// Honors the NO_COLOR convention.
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// log writes a single timestamped line, colorized when the writer is a TTY.
func (cl *ConsoleLogger) log(level string, colorize *color.Color, format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	if cl.colorOutput && colorize != nil {
		fmt.Fprintf(cl.writer, "[%s] %s\n", timestamp, colorize.Sprint(msg))
		return
	}
	fmt.Fprintf(cl.writer, "[%s] %s\n", timestamp, msg)
}

// Tracef logs at trace level.
func (cl *ConsoleLogger) Tracef(format string, args ...interface{}) {
	cl.log("trace", nil, format, args...)
}

// Debugf logs at debug level.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.log("debug", nil, format, args...)
}

// Infof logs at info level.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.log("info", nil, format, args...)
}

// Warnf logs at warn level in yellow.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.log("warn", color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level in red.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.log("error", color.New(color.FgRed), format, args...)
}
