// Package registry caches loaded engines by version.
package registry

import (
	"context"
	"errors"
	"io"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var _ ports.EngineResolver = (*Registry)(nil)

// Registry holds at most one loaded engine per version. Construction of a
// missing version is deduplicated: concurrent first requests share one
// download and one load.
type Registry struct {
	acquirer ports.VersionAcquirer
	loader   ports.EngineLoader
	tracer   ports.Tracer

	mu      sync.RWMutex
	engines map[string]ports.Engine
	group   singleflight.Group
}

// New creates an empty Registry.
func New(acquirer ports.VersionAcquirer, loader ports.EngineLoader, tracer ports.Tracer) *Registry {
	return &Registry{
		acquirer: acquirer,
		loader:   loader,
		tracer:   tracer,
		engines:  make(map[string]ports.Engine),
	}
}

// Resolve returns the engine for version, acquiring and loading it on first use.
// Failures are *domain.FormatError values of kind ErrCannotDownload or
// ErrCorruptedArtifacts. A failed construction stores nothing.
func (r *Registry) Resolve(ctx context.Context, version string, progress io.Writer) (ports.Engine, error) {
	ctx, span := r.tracer.Start(ctx, "engine.resolve")
	defer span.End()
	span.SetAttribute("fmtpin.version", version)

	if eng, ok := r.lookup(version); ok {
		span.SetAttribute("fmtpin.cached", true)
		return eng, nil
	}
	span.SetAttribute("fmtpin.cached", false)

	// Late arrivals share the in-flight result, built with the first caller's context.
	result, err, _ := r.group.Do(version, func() (any, error) {
		if eng, ok := r.lookup(version); ok {
			return eng, nil
		}
		eng, err := r.build(ctx, version, progress)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.engines[version] = eng
		r.mu.Unlock()
		return eng, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result.(ports.Engine), nil
}

func (r *Registry) build(ctx context.Context, version string, progress io.Writer) (ports.Engine, error) {
	artifacts, err := r.acquirer.Download(ctx, version, progress)
	if err != nil {
		return nil, &domain.FormatError{Kind: domain.ErrCannotDownload, Version: version, Cause: err}
	}

	eng, err := r.loader.Load(ctx, artifacts)
	if err != nil {
		return nil, &domain.FormatError{
			Kind:      domain.ErrCorruptedArtifacts,
			Version:   version,
			Locations: slices.Clone(artifacts.Locations),
			Cause:     err,
		}
	}
	return eng, nil
}

func (r *Registry) lookup(version string) (ports.Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	eng, ok := r.engines[version]
	return eng, ok
}

// Clear drops every cached engine and releases its execution scope.
// It must not run concurrently with formatting calls.
func (r *Registry) Clear(ctx context.Context) error {
	r.mu.Lock()
	engines := r.engines
	r.engines = make(map[string]ports.Engine)
	r.mu.Unlock()

	var errs []error
	for _, version := range slices.Sorted(maps.Keys(engines)) {
		if err := engines[version].Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of cached engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// Versions returns the cached versions in sorted order.
func (r *Registry) Versions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.engines))
}
