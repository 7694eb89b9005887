package ports

import (
	"context"
	"io"

	"go.trai.ch/fmtpin/internal/core/domain"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// EngineLoader builds an isolated engine from an artifact set.
type EngineLoader interface {
	Load(ctx context.Context, artifacts domain.Artifacts) (Engine, error)
}

// Engine is a loaded formatting engine bound to one version.
// It is safe for concurrent use until Close is called.
type Engine interface {
	// Version returns the version the engine was loaded for.
	Version() string
	// ParseConfig parses the settings text of the file at configPath.
	ParseConfig(ctx context.Context, configPath string, text []byte) (domain.Settings, error)
	// Format formats code from filePath with the given config.
	Format(ctx context.Context, code string, cfg *domain.ProjectConfig, filePath string) (string, error)
	// Close releases the execution scope.
	Close(ctx context.Context) error
}

// EngineResolver returns the loaded engine for a version, building it on first use.
type EngineResolver interface {
	Resolve(ctx context.Context, version string, progress io.Writer) (Engine, error)
}
