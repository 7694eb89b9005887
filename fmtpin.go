// Package fmtpin formats source files with the exact formatting engine version
// their project configuration pins. Engine versions are downloaded on first
// use, loaded into isolated execution scopes and cached for the lifetime of a
// Formatter.
package fmtpin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fmtpin/internal/adapters/settings"
	"go.trai.ch/fmtpin/internal/app"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	_ "go.trai.ch/fmtpin/internal/wiring" // Register providers
	"go.trai.ch/zerr"
)

type (
	// Formatter formats files against their project's pinned engine version.
	Formatter = app.Orchestrator
	// Session formats files against one resolved config.
	Session = app.Session
	// Options are the host toggles a Formatter is built with.
	Options = domain.Options
	// FormatError is the typed failure returned by FormatDetailed.
	FormatError = domain.FormatError
	// Reporter receives diagnostics from Format.
	Reporter = ports.Reporter
)

// Error kinds. A *FormatError matches exactly one of them with errors.Is.
var (
	ErrConfigDoesNotExist   = domain.ErrConfigDoesNotExist
	ErrConfigMissingVersion = domain.ErrConfigMissingVersion
	ErrConfigParse          = domain.ErrConfigParse
	ErrCannotDownload       = domain.ErrCannotDownload
	ErrCorruptedArtifacts   = domain.ErrCorruptedArtifacts
	ErrUnknown              = domain.ErrUnknown
)

// Option configures New.
type Option func(*config)

type config struct {
	options *Options
}

// WithOptions builds the Formatter with opts instead of loading them from the
// environment.
func WithOptions(opts Options) Option {
	return func(c *config) {
		c.options = &opts
	}
}

// DefaultOptions returns the built-in defaults, without environment overrides.
func DefaultOptions() Options {
	return domain.DefaultOptions()
}

// LoadOptions returns the defaults overridden by the optional FMTPIN_CONFIG file
// and FMTPIN_* environment variables.
func LoadOptions() (Options, error) {
	return settings.Load()
}

// New assembles a Formatter. Every call builds an independent graph: caches
// and loaded engines are not shared between Formatters. Release them with Close.
func New(ctx context.Context, opts ...Option) (*Formatter, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	graftOpts := []graft.Option{graft.DisableCache()}
	if cfg.options != nil {
		graftOpts = append(graftOpts, graft.PatchValue[domain.Options](*cfg.options))
	}

	f, _, err := graft.ExecuteFor[*app.Orchestrator](ctx, graftOpts...)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to assemble formatter")
	}
	return f, nil
}
