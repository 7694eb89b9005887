package ports

// VersionReader extracts the declared engine version from a settings file.
//
//go:generate mockgen -source=version_reader.go -destination=mocks/mock_version_reader.go -package=mocks
type VersionReader interface {
	// ReadVersion returns the top-level version of the file at path.
	// A missing, malformed or non-string version yields "" when respectVersion is set
	// and defaultVersion otherwise. Only I/O failures are returned as errors.
	ReadVersion(path string, respectVersion bool, defaultVersion string) (string, error)
}
