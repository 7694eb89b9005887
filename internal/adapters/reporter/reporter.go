// Package reporter implements ports.Reporter on top of ports.Logger.
package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/zerr"
)

// LogReporter writes pipeline diagnostics to a logger.
type LogReporter struct {
	logger ports.Logger
}

// New creates a LogReporter.
func New(logger ports.Logger) *LogReporter {
	return &LogReporter{logger: logger}
}

// Error logs a failure with the config path attached.
func (r *LogReporter) Error(path string, err error) {
	r.logger.Error(zerr.With(err, "path", path))
}

// MissingVersion warns about a config without an engine version.
func (r *LogReporter) MissingVersion(path, defaultVersion string) {
	r.logger.Warn(fmt.Sprintf("%s: missing engine version, add `version = %q`", path, defaultVersion))
}

// Excluded notes a file skipped by the project filters.
func (r *LogReporter) Excluded(path string) {
	r.logger.Debug(fmt.Sprintf("%s: excluded by project filters", path))
}

// ParsedConfig notes a (re)parsed config.
func (r *LogReporter) ParsedConfig(path, version string) {
	r.logger.Info(fmt.Sprintf("%s: parsed config for engine %s", path, version))
}

// DownloadWriter returns a writer logging each complete line at info level.
func (r *LogReporter) DownloadWriter() io.Writer {
	return &logWriter{logger: r.logger}
}

// logWriter splits written bytes into lines. It is safe for concurrent writers.
type logWriter struct {
	mu     sync.Mutex
	logger ports.Logger
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if msg == "" {
		return
	}
	w.logger.Info(msg)
}
