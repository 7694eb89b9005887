// Package app composes config resolution, engine resolution and formatting
// into the format entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"go.trai.ch/fmtpin/internal/engine/configcache"
	"go.trai.ch/fmtpin/internal/engine/registry"
)

// Orchestrator formats files with the engine version their project pins.
// It is immutable: the With* methods return a copy sharing the same caches.
type Orchestrator struct {
	configs  *configcache.Cache
	engines  *registry.Registry
	tracer   ports.Tracer
	logger   ports.Logger
	reporter ports.Reporter
	watcher  *configWatch

	respectVersion        bool
	respectProjectFilters bool
	defaultVersion        string
	cacheConfigs          bool
}

// New creates an Orchestrator with the toggles from opts. A nil reporter
// discards diagnostics.
func New(
	configs *configcache.Cache,
	engines *registry.Registry,
	tracer ports.Tracer,
	logger ports.Logger,
	reporter ports.Reporter,
	opts domain.Options,
) *Orchestrator {
	return &Orchestrator{
		configs:               configs,
		engines:               engines,
		tracer:                tracer,
		logger:                logger,
		reporter:              orNop(reporter),
		respectVersion:        opts.RespectVersion,
		respectProjectFilters: opts.RespectProjectFilters,
		defaultVersion:        opts.DefaultVersion,
		cacheConfigs:          opts.CacheConfigs,
	}
}

// WithReporter returns a copy reporting to r. A nil r discards diagnostics.
func (o *Orchestrator) WithReporter(r ports.Reporter) *Orchestrator {
	c := *o
	c.reporter = orNop(r)
	return &c
}

// WithRespectVersion returns a copy that requires configs to declare a version
// when enabled, and falls back to the default version otherwise.
func (o *Orchestrator) WithRespectVersion(enabled bool) *Orchestrator {
	c := *o
	c.respectVersion = enabled
	return &c
}

// WithRespectProjectFilters returns a copy that honours project inclusion rules when enabled.
func (o *Orchestrator) WithRespectProjectFilters(enabled bool) *Orchestrator {
	c := *o
	c.respectProjectFilters = enabled
	return &c
}

// WithDefaultVersion returns a copy using version when a config declares none.
func (o *Orchestrator) WithDefaultVersion(version string) *Orchestrator {
	c := *o
	c.defaultVersion = version
	return &c
}

// WithConfigCaching returns a copy that caches parsed configs when enabled.
func (o *Orchestrator) WithConfigCaching(enabled bool) *Orchestrator {
	c := *o
	c.cacheConfigs = enabled
	return &c
}

// Format formats code and never fails: on error it reports through the
// reporter and returns code unchanged.
func (o *Orchestrator) Format(ctx context.Context, configPath, filePath, code string) string {
	out, err := o.FormatDetailed(ctx, configPath, filePath, code)
	if err != nil {
		o.report(configPath, err)
		return code
	}
	return out
}

// FormatDetailed formats code and returns the *domain.FormatError on failure.
// A file outside the project's inclusion scope is returned unchanged.
func (o *Orchestrator) FormatDetailed(ctx context.Context, configPath, filePath, code string) (string, error) {
	ctx, span := o.tracer.Start(ctx, "format")
	defer span.End()
	span.SetAttribute("fmtpin.config", configPath)
	span.SetAttribute("fmtpin.file", filePath)

	res, err := o.resolve(ctx, configPath)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	out, err := o.formatWith(ctx, res, filePath, code, span)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return out, nil
}

// Clear drops every cached config and releases every loaded engine.
// It must not run concurrently with formatting calls.
func (o *Orchestrator) Clear(ctx context.Context) error {
	o.configs.Clear()
	return o.engines.Clear(ctx)
}

// Close clears both caches and stops the config watcher.
func (o *Orchestrator) Close(ctx context.Context) error {
	var watchErr error
	if o.watcher != nil {
		watchErr = o.watcher.close()
	}
	return errors.Join(watchErr, o.Clear(ctx))
}

func (o *Orchestrator) request() configcache.Request {
	return configcache.Request{
		Reporter:       o.reporter,
		RespectVersion: o.respectVersion,
		DefaultVersion: o.defaultVersion,
		CacheConfigs:   o.cacheConfigs,
	}
}

func (o *Orchestrator) resolve(ctx context.Context, configPath string) (*configcache.Resolution, error) {
	res, err := o.configs.Resolve(ctx, configPath, o.request())
	if err != nil {
		return nil, err
	}
	if o.watcher != nil && o.cacheConfigs {
		if err := o.watcher.watch(configPath); err != nil {
			o.logger.Warn(fmt.Sprintf("%s: config changes will not be detected: %v", configPath, err))
		}
	}
	return res, nil
}

func (o *Orchestrator) formatWith(
	ctx context.Context,
	res *configcache.Resolution,
	filePath, code string,
	span ports.Span,
) (string, error) {
	cfg := res.Config.WithDialect(domain.DialectFor(filePath))
	span.SetAttribute("fmtpin.version", cfg.Version)
	span.SetAttribute("fmtpin.dialect", string(cfg.Dialect))

	if o.respectProjectFilters && !cfg.IsIncluded(filePath) {
		span.SetAttribute("fmtpin.excluded", true)
		o.reporter.Excluded(filePath)
		return code, nil
	}

	out, err := res.Engine.Format(ctx, code, cfg, filePath)
	if err != nil {
		return "", &domain.FormatError{
			Kind:       domain.ErrUnknown,
			ConfigPath: cfg.Path,
			Version:    cfg.Version,
			Cause:      err,
		}
	}
	return out, nil
}

func (o *Orchestrator) report(configPath string, err error) {
	fe := domain.AsFormatError(err)
	if errors.Is(fe, domain.ErrConfigMissingVersion) {
		o.reporter.MissingVersion(configPath, fe.DefaultVersion)
		return
	}
	o.reporter.Error(configPath, fe)
}

type nopReporter struct{}

func (nopReporter) Error(string, error) {}
func (nopReporter) MissingVersion(string, string) {}
func (nopReporter) Excluded(string) {}
func (nopReporter) ParsedConfig(string, string) {}
func (nopReporter) DownloadWriter() io.Writer { return io.Discard }

func orNop(r ports.Reporter) ports.Reporter {
	if r == nil {
		return nopReporter{}
	}
	return r
}
