package logx

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Formatter is the interface for log formatters
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// LogEntry represents a single log entry
type LogEntry struct {
	Level     Level
	Message   string
	Fields    Fields
	Error     error
	Timestamp time.Time
}

// Fields is a map of structured data
type Fields map[string]interface{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorWhite  = "\033[97m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"

	colorBoldRed    = "\033[1;31m"
	colorBoldYellow = "\033[1;33m"
	colorBoldCyan   = "\033[1;36m"
	colorBoldGreen  = "\033[1;32m"
)

// ConsoleFormatter formats logs for console output with colors
type ConsoleFormatter struct {
	config *Config
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(config *Config) *ConsoleFormatter {
	return &ConsoleFormatter{config: config}
}

// Format formats a log entry for console output
func (f *ConsoleFormatter) Format(entry *LogEntry) ([]byte, error) {
	var b strings.Builder

	if f.config.EnableTimestamp {
		if f.config.EnableColors {
			b.WriteString(colorGray)
			b.WriteString(entry.Timestamp.Format(f.config.TimeFormat))
			b.WriteString(colorReset)
		} else {
			b.WriteString(entry.Timestamp.Format(f.config.TimeFormat))
		}
		b.WriteString(" ")
	}

	b.WriteString(f.formatLevel(entry.Level))
	b.WriteString(" ")

	if f.config.EnableColors {
		b.WriteString(colorWhite)
		b.WriteString(entry.Message)
		b.WriteString(colorReset)
	} else {
		b.WriteString(entry.Message)
	}

	if len(entry.Fields) > 0 {
		b.WriteString(" ")
		if f.config.EnableColors {
			b.WriteString(colorCyan)
		}
		i := 0
		for k, v := range entry.Fields {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(fmt.Sprintf("%v", v))
			i++
		}
		if f.config.EnableColors {
			b.WriteString(colorReset)
		}
	}

	if entry.Error != nil {
		b.WriteString("\n")
		if f.config.EnableColors {
			b.WriteString(colorRed)
			b.WriteString("  error: ")
			b.WriteString(entry.Error.Error())
			b.WriteString(colorReset)
		} else {
			b.WriteString("  error: ")
			b.WriteString(entry.Error.Error())
		}
	}

	b.WriteString("\n")
	return []byte(b.String()), nil
}

// formatLevel formats the level with appropriate color
func (f *ConsoleFormatter) formatLevel(level Level) string {
	if !f.config.EnableColors {
		return fmt.Sprintf("[%s]", level.String())
	}

	switch level {
	case LevelTrace:
		return fmt.Sprintf("%s[TRACE]%s", colorGray, colorReset)
	case LevelDebug:
		return fmt.Sprintf("%s[DEBUG]%s", colorBoldCyan, colorReset)
	case LevelInfo:
		return fmt.Sprintf("%s[INFO ]%s", colorBoldGreen, colorReset)
	case LevelWarn:
		return fmt.Sprintf("%s[WARN ]%s", colorBoldYellow, colorReset)
	case LevelError:
		return fmt.Sprintf("%s[ERROR]%s", colorBoldRed, colorReset)
	case LevelFatal:
		return fmt.Sprintf("%s[FATAL]%s", colorBoldRed, colorReset)
	default:
		return fmt.Sprintf("[%s]", level.String())
	}
}

// JSONFormatter formats logs as JSON
type JSONFormatter struct {
	config *Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(config *Config) *JSONFormatter {
	return &JSONFormatter{config: config}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *LogEntry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+4)

	data["level"] = entry.Level.String()
	data["message"] = entry.Message

	if f.config.EnableTimestamp {
		data["timestamp"] = entry.Timestamp.Format(time.RFC3339Nano)
	}

	for k, v := range entry.Fields {
		data[k] = v
	}

	if entry.Error != nil {
		data["error"] = entry.Error.Error()
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return append(bytes, '\n'), nil
}
