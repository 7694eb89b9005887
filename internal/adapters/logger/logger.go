// Package logger implements ports.Logger with log/slog over a charmbracelet/log
// handler for text output and zap for JSON output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// FormatText renders human-readable lines.
	FormatText = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON = "json"
)

// Logger implements ports.Logger.
type Logger struct {
	mu    sync.RWMutex
	text  *slog.Logger
	json  *zap.Logger
	level string
}

// New creates a Logger writing to w. level is one of debug, info, warn or error
// and format is FormatText or FormatJSON.
func New(w io.Writer, level, format string) (*Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = "info"
	}

	l := &Logger{level: level}
	if err := l.configure(w, format); err != nil {
		return nil, err
	}
	return l, nil
}

// SetOutput redirects the logger, keeping its level and format.
func (l *Logger) SetOutput(w io.Writer) error {
	if w == nil {
		w = os.Stderr
	}
	format := FormatText
	l.mu.RLock()
	if l.json != nil {
		format = FormatJSON
	}
	l.mu.RUnlock()
	return l.configure(w, format)
}

func (l *Logger) configure(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		lvl, err := log.ParseLevel(l.level)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "log_level", l.level)
		}
		handler := log.NewWithOptions(w, log.Options{Level: lvl})
		l.mu.Lock()
		l.text, l.json = slog.New(handler), nil
		l.mu.Unlock()
	case FormatJSON:
		lvl, err := zapcore.ParseLevel(l.level)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "log_level", l.level)
		}
		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.TimeKey = ""
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), lvl)
		l.mu.Lock()
		l.text, l.json = nil, zap.New(core)
		l.mu.Unlock()
	default:
		return zerr.With(zerr.Wrap(domain.ErrSettingsLoadFailed, "unknown log format"), "log_format", format)
	}
	return nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.json != nil {
		l.json.Debug(msg)
		return
	}
	l.text.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.json != nil {
		l.json.Info(msg)
		return
	}
	l.text.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.json != nil {
		l.json.Warn(msg)
		return
	}
	l.text.Warn(msg)
}

// Error logs an error with its cause chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := collectErrorEntries(err)
	if l.json != nil {
		l.json.Error(err.Error(), jsonFields(entries)...)
		return
	}
	l.text.Error(formatErrorEntries(entries))
}

// jsonFields flattens the chain metadata into fields. Outer links win on key collisions.
func jsonFields(entries []ErrorEntry) []zap.Field {
	seen := make(map[string]struct{})
	var fields []zap.Field
	causes := make([]string, 0, len(entries))

	for i, entry := range entries {
		if i > 0 {
			causes = append(causes, entry.Message)
		}
		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			fields = append(fields, zap.Any(k, entry.Metadata[k]))
		}
	}

	if len(causes) > 0 {
		fields = append(fields, zap.Strings("causes", causes))
	}
	return fields
}
