package domain

const (
	// DefaultEngineVersion is used when configs may omit their version.
	DefaultEngineVersion = "1.0.0"

	// DefaultReleaseURL is the release index queried for engine versions.
	DefaultReleaseURL = "https://releases.fmtpin.dev/engine"

	// DirPerm is the permission for cache directories.
	DirPerm = 0o750
	// FilePerm is the permission for cached data files.
	FilePerm = 0o600
	// ExecPerm is the permission for cached executables.
	ExecPerm = 0o750
)

// Options is the host toggle set.
type Options struct {
	// RespectVersion requires configs to declare their engine version.
	RespectVersion bool
	// RespectProjectFilters skips files outside the project's inclusion scope.
	RespectProjectFilters bool
	// DefaultVersion is used when RespectVersion is off and a config has no version.
	DefaultVersion string
	// CacheConfigs keeps parsed configs until their modification time changes.
	CacheConfigs bool
	// StrictEngineVersion fails loading when an engine reports a different version.
	StrictEngineVersion bool
	// WatchConfigs evicts cached configs as soon as their files change.
	WatchConfigs bool

	// ReleaseURL is the base URL of the release index.
	ReleaseURL string
	// CacheDir holds downloaded engine artifacts.
	CacheDir string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// DefaultOptions returns the toggles used when the host sets nothing.
func DefaultOptions() Options {
	return Options{
		RespectVersion:        true,
		RespectProjectFilters: true,
		DefaultVersion:        DefaultEngineVersion,
		CacheConfigs:          true,
		ReleaseURL:            DefaultReleaseURL,
		LogLevel:              "info",
		LogFormat:             "text",
	}
}
