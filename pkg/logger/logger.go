package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of log messages
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a flag value onto a Level. Unknown values fall back to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
	NoOp      bool
	Output    io.Writer // defaults to os.Stderr
}

// Logger writes leveled entries to a single writer.
type Logger struct {
	mu     sync.Mutex
	config Config
	out    io.Writer
}

var defaultLogger *Logger

// Initialize sets up the default logger
func Initialize(config Config) error {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	defaultLogger = &Logger{config: config, out: out}
	return nil
}

// Enabled reports whether the default logger would emit entries at level.
func Enabled(level Level) bool {
	return defaultLogger != nil && level >= defaultLogger.config.Level
}

// Log writes a log message
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level < l.config.Level {
		return
	}

	entry := LogEntry{
		Time:      time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.config.Component,
		fields:    fields,
	}

	if level <= DebugLevel {
		if _, file, line, ok := runtime.Caller(2); ok {
			entry.File = file
			entry.Line = line
		}
	}

	var output string
	if l.config.JSON {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
		jsonBytes, _ := json.Marshal(entry)
		output = string(jsonBytes)
	} else {
		output = l.formatPretty(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.out, output)
}

func (l *Logger) formatPretty(entry LogEntry) string {
	var b strings.Builder

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05"))

	level := entry.Level
	if l.config.UseColor {
		switch entry.Level {
		case "TRACE":
			level = "\033[37mTRACE\033[0m"
		case "DEBUG":
			level = "\033[36mDEBUG\033[0m"
		case "INFO":
			level = "\033[32mINFO\033[0m"
		case "WARN":
			level = "\033[33mWARN\033[0m"
		case "ERROR":
			level = "\033[31mERROR\033[0m"
		}
	}
	fmt.Fprintf(&b, " [%s]", level)

	if entry.Component != "" {
		fmt.Fprintf(&b, " %s:", entry.Component)
	}

	if l.config.NoOp {
		if l.config.UseColor {
			b.WriteString(" \033[35m[NO-OP]\033[0m")
		} else {
			b.WriteString(" [NO-OP]")
		}
	}

	fmt.Fprintf(&b, " %s", entry.Message)

	// Fields keep call-site order so trace ids lead the list.
	if len(entry.fields) > 0 {
		b.WriteString(" {")
		for i, f := range entry.fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", f.Key, f.Value)
		}
		b.WriteString("}")
	}

	if entry.File != "" {
		fmt.Fprintf(&b, " (%s:%d)", entry.File, entry.Line)
	}

	return b.String()
}

// Field represents a structured field in a log entry
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Strings creates a field holding a list of strings.
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: "[" + strings.Join(values, ",") + "]"}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Path creates a "path" field.
func Path(value string) Field {
	return Field{Key: "path", Value: value}
}

// TraceID creates the correlation field shared by every entry of one run.
func TraceID(id string) Field {
	return Field{Key: "trace_id", Value: id}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: "<nil>"}
	}
	return Field{Key: "error", Value: err.Error()}
}

// LogEntry represents a log entry
type LogEntry struct {
	Time      time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	File      string                 `json:"file,omitempty"`
	Line      int                    `json:"line,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`

	fields []Field
}

func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(TraceLevel, message, fields...)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(DebugLevel, message, fields...)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(InfoLevel, message, fields...)
	}
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(WarnLevel, message, fields...)
	}
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(ErrorLevel, message, fields...)
	} else {
		// Errors are never silent, even before Initialize.
		_, _ = fmt.Fprintf(os.Stderr, "[ERROR] cwt: %s\n", message)
	}
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.mu.Lock()
		defaultLogger.out = w
		defaultLogger.mu.Unlock()
	}
}
