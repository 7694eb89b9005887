package sandbox

import (
	"context"
	"sync/atomic"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
)

// engine implements ports.Engine over a backend.
type engine struct {
	version string
	backend backend
	closed  atomic.Bool
}

func (e *engine) Version() string {
	return e.version
}

func (e *engine) ParseConfig(ctx context.Context, configPath string, text []byte) (domain.Settings, error) {
	if e.closed.Load() {
		return nil, zerr.With(zerr.Wrap(domain.ErrEngineClosed, "engine"), "version", e.version)
	}

	out, err := e.backend.run(ctx, []string{CmdParseConfig, configPath}, text)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	settings, err := domain.ParseSettings(out)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return settings, nil
}

func (e *engine) Format(ctx context.Context, code string, cfg *domain.ProjectConfig, filePath string) (string, error) {
	if e.closed.Load() {
		return "", zerr.With(zerr.Wrap(domain.ErrEngineClosed, "engine"), "version", e.version)
	}

	settings, err := cfg.EncodeSettings()
	if err != nil {
		return "", err
	}
	out, err := e.backend.run(ctx, []string{CmdFormat, filePath, settings}, []byte(code))
	if err != nil {
		return "", zerr.With(err, "path", filePath)
	}
	return string(out), nil
}

// Close releases the execution scope. Closing twice is a no-op.
func (e *engine) Close(ctx context.Context) error {
	if e.closed.Swap(true) {
		return nil
	}
	return e.backend.close(ctx)
}
