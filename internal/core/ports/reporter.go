package ports

import "io"

// Reporter receives diagnostics from the format pipeline.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Error reports a failure while handling the given path.
	Error(path string, err error)
	// MissingVersion reports a config without an engine version.
	MissingVersion(path, defaultVersion string)
	// Excluded reports a file skipped because it is outside the project scope.
	Excluded(path string)
	// ParsedConfig reports a config that was (re)parsed.
	ParsedConfig(path, version string)
	// DownloadWriter receives download progress output.
	DownloadWriter() io.Writer
}
