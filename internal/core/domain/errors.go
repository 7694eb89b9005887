package domain

import "go.trai.ch/zerr"

// Error kinds surfaced to callers. A *FormatError matches exactly one of them
// with errors.Is.
var (
	// ErrConfigDoesNotExist is returned when the config path is missing on disk.
	ErrConfigDoesNotExist = zerr.New("config file does not exist")

	// ErrConfigMissingVersion is returned when the config declares no engine version
	// and version enforcement is on.
	ErrConfigMissingVersion = zerr.New("config is missing the engine version")

	// ErrConfigParse is returned when the engine rejects the settings file or it cannot be read.
	ErrConfigParse = zerr.New("failed to parse config file")

	// ErrCannotDownload is returned when a version cannot be acquired.
	ErrCannotDownload = zerr.New("cannot download engine")

	// ErrCorruptedArtifacts is returned when an acquired artifact set does not expose
	// the engine capability surface.
	ErrCorruptedArtifacts = zerr.New("engine artifacts are corrupted")

	// ErrUnknown is returned for any other failure raised while parsing or formatting.
	ErrUnknown = zerr.New("unexpected engine failure")
)

// Acquisition errors.
var (
	// ErrVersionNotFound is returned when a version does not resolve to any known release.
	ErrVersionNotFound = zerr.New("engine version not found")

	// ErrDownloadFailed is returned when resolving or fetching a release fails unexpectedly.
	ErrDownloadFailed = zerr.New("failed to download engine release")

	// ErrChecksumMismatch is returned when a downloaded artifact does not match its manifest digest.
	ErrChecksumMismatch = zerr.New("artifact checksum mismatch")

	// ErrInvalidManifest is returned when a release manifest cannot be decoded or is inconsistent.
	ErrInvalidManifest = zerr.New("invalid release manifest")

	// ErrCacheCreateFailed is returned when the artifact cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create artifact cache directory")
)

// Sandbox errors.
var (
	// ErrNoEntryPoint is returned when an artifact set has neither a wasm module nor an executable.
	ErrNoEntryPoint = zerr.New("artifact set has no engine entry point")

	// ErrMissingCapability is returned when an entry point does not expose the engine protocol.
	ErrMissingCapability = zerr.New("engine does not expose the expected capabilities")

	// ErrVersionMismatch is returned when an engine reports a different version than requested.
	ErrVersionMismatch = zerr.New("engine reports a different version")

	// ErrEngineRejected is returned when the engine refuses its input (protocol exit code 1).
	ErrEngineRejected = zerr.New("engine rejected input")

	// ErrEngineClosed is returned when a capability is invoked on a released engine.
	ErrEngineClosed = zerr.New("engine is closed")
)

// Config errors.
var (
	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrInvalidProjectFilter is returned when a project filter pattern does not compile.
	ErrInvalidProjectFilter = zerr.New("invalid project filter")

	// ErrInvalidSettings is returned when engine settings are not a JSON object.
	ErrInvalidSettings = zerr.New("engine returned invalid settings")

	// ErrSettingsLoadFailed is returned when host options cannot be loaded.
	ErrSettingsLoadFailed = zerr.New("failed to load fmtpin settings")
)
