// Package logger provides console logging for pipeline execution.
//
// The logger reports numbered pipeline phases, per-phase detail lines, and an
// end-of-run summary. All methods are safe for concurrent use. Color output is
// automatically enabled when writing to a terminal.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs pipeline progress to a writer with timestamps and thread
// safety. All output is prefixed with [HH:MM:SS] timestamps. It supports log
// level filtering to control message verbosity.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
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

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel is a helper that logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}

	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string

	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorizeLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
}

// LogStep logs a numbered pipeline phase header at INFO level.
// Format: "[HH:MM:SS] [Step <n>] <description>"
func (cl *ConsoleLogger) LogStep(number int, description string) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var message string
	if cl.colorOutput {
		step := color.New(color.FgMagenta).Sprintf("[Step %d]", number)
		desc := color.New(color.Bold).Sprint(description)
		message = fmt.Sprintf("[%s] %s %s\n", ts, step, desc)
	} else {
		message = fmt.Sprintf("[%s] [Step %d] %s\n", ts, number, description)
	}

	cl.writer.Write([]byte(message))
}

// LogDetail logs a labeled value under the current phase at INFO level.
// Format: "[HH:MM:SS]   <label>: <value>"
func (cl *ConsoleLogger) LogDetail(label string, value interface{}) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var message string
	if cl.colorOutput {
		labelColored := color.New(color.FgCyan).Sprint(label)
		message = fmt.Sprintf("[%s]   %s: %v\n", ts, labelColored, value)
	} else {
		message = fmt.Sprintf("[%s]   %s: %v\n", ts, label, value)
	}

	cl.writer.Write([]byte(message))
}

// LogSuccess logs a completed phase milestone at INFO level.
// Format: "[HH:MM:SS] [OK] <message>"
func (cl *ConsoleLogger) LogSuccess(message string) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		ok := color.New(color.FgGreen).Sprint("[OK]")
		formatted = fmt.Sprintf("[%s] %s %s\n", ts, ok, message)
	} else {
		formatted = fmt.Sprintf("[%s] [OK] %s\n", ts, message)
	}

	cl.writer.Write([]byte(formatted))
}

// LogSummary logs the run summary with processed/dropped counts and duration at INFO level.
func (cl *ConsoleLogger) LogSummary(processed, dropped int, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	header := "=== Run Summary ==="
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, header))
	sb.WriteString(fmt.Sprintf("[%s] Sessions processed: %d\n", ts, processed))
	sb.WriteString(fmt.Sprintf("[%s] Rows dropped: %d\n", ts, dropped))
	sb.WriteString(fmt.Sprintf("[%s] Duration: %s\n", ts, formatDuration(duration)))

	cl.writer.Write([]byte(sb.String()))
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration formats a duration as a human-readable string with
// sub-second precision trimmed.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
