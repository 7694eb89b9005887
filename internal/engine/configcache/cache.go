// Package configcache caches resolved project configs keyed by path and
// invalidated by file modification time.
package configcache

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/fmtpin/internal/core/ports"
)

// Request carries the caller's toggles for one resolution.
type Request struct {
	Reporter       ports.Reporter
	RespectVersion bool
	DefaultVersion string
	CacheConfigs   bool
}

// Resolution is a parsed config together with the engine that parsed it.
type Resolution struct {
	Config *domain.ProjectConfig
	Engine ports.Engine
}

type entry struct {
	resolution *Resolution
	modTime    time.Time
	// defaultVersion is set when the config declares no version and the
	// entry was built with the fallback.
	defaultVersion string
}

// validFor reports whether the entry can serve req for a file last modified at modTime.
// An entry built on the fallback version only serves requests that would fall
// back to the same version.
func (e entry) validFor(modTime time.Time, req Request) bool {
	if !e.modTime.Equal(modTime) {
		return false
	}
	if e.defaultVersion == "" {
		return true
	}
	return !req.RespectVersion && e.defaultVersion == normalizeVersion(req.DefaultVersion)
}

// Cache maps config paths to resolutions. An entry is valid only while the
// file's modification time is exactly the one recorded when it was built and,
// for configs without a version, while the caller's fallback is unchanged.
type Cache struct {
	reader  ports.VersionReader
	engines ports.EngineResolver
	tracer  ports.Tracer

	mu      sync.RWMutex
	entries map[string]entry
}

// New creates an empty Cache.
func New(reader ports.VersionReader, engines ports.EngineResolver, tracer ports.Tracer) *Cache {
	return &Cache{
		reader:  reader,
		engines: engines,
		tracer:  tracer,
		entries: make(map[string]entry),
	}
}

// Resolve returns the resolution for the config at configPath, rebuilding it
// when caching is off, no entry exists, or the file changed since the entry
// was built. Failures are *domain.FormatError values carrying configPath.
func (c *Cache) Resolve(ctx context.Context, configPath string, req Request) (*Resolution, error) {
	ctx, span := c.tracer.Start(ctx, "config.resolve")
	defer span.End()
	span.SetAttribute("fmtpin.config", configPath)

	res, err := c.resolve(ctx, configPath, req, span)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return res, nil
}

func (c *Cache) resolve(ctx context.Context, configPath string, req Request, span ports.Span) (*Resolution, error) {
	info, err := os.Stat(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.FormatError{Kind: domain.ErrConfigDoesNotExist, ConfigPath: configPath}
		}
		return nil, &domain.FormatError{Kind: domain.ErrConfigParse, ConfigPath: configPath, Cause: err}
	}

	if !req.CacheConfigs {
		span.SetAttribute("fmtpin.cached", false)
		res, _, err := c.build(ctx, configPath, req)
		return res, err
	}

	key := cacheKey(configPath)
	modTime := info.ModTime()

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && e.validFor(modTime, req) {
		span.SetAttribute("fmtpin.cached", true)
		return e.resolution, nil
	}
	span.SetAttribute("fmtpin.cached", false)

	res, defaulted, err := c.build(ctx, configPath, req)
	if err != nil {
		return nil, err
	}

	e = entry{resolution: res, modTime: modTime}
	if defaulted {
		e.defaultVersion = res.Config.Version
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	if req.Reporter != nil {
		req.Reporter.ParsedConfig(configPath, res.Config.Version)
	}
	return res, nil
}

// build runs the full resolution chain. defaulted reports whether the config
// declares no version and the request's fallback was used.
func (c *Cache) build(ctx context.Context, configPath string, req Request) (res *Resolution, defaulted bool, err error) {
	declared, err := c.reader.ReadVersion(configPath, true, req.DefaultVersion)
	if err != nil {
		return nil, false, &domain.FormatError{Kind: domain.ErrConfigParse, ConfigPath: configPath, Cause: err}
	}
	version := normalizeVersion(declared)
	if version == "" && !req.RespectVersion {
		version = normalizeVersion(req.DefaultVersion)
		defaulted = true
	}
	if version == "" {
		return nil, false, &domain.FormatError{
			Kind:           domain.ErrConfigMissingVersion,
			ConfigPath:     configPath,
			DefaultVersion: req.DefaultVersion,
		}
	}

	var progress io.Writer = io.Discard
	if req.Reporter != nil {
		progress = req.Reporter.DownloadWriter()
	}
	eng, err := c.engines.Resolve(ctx, version, progress)
	if err != nil {
		return nil, false, domain.AsFormatError(err).WithConfigPath(configPath)
	}

	//nolint:gosec // configPath is supplied by the caller
	text, err := os.ReadFile(configPath)
	if err != nil {
		return nil, false, &domain.FormatError{Kind: domain.ErrConfigParse, ConfigPath: configPath, Version: version, Cause: err}
	}

	settings, err := eng.ParseConfig(ctx, configPath, text)
	if err != nil {
		kind := domain.ErrUnknown
		if errors.Is(err, domain.ErrEngineRejected) {
			kind = domain.ErrConfigParse
		}
		return nil, false, &domain.FormatError{Kind: kind, ConfigPath: configPath, Version: version, Cause: err}
	}

	cfg, err := domain.NewProjectConfig(configPath, version, settings)
	if err != nil {
		return nil, false, &domain.FormatError{Kind: domain.ErrConfigParse, ConfigPath: configPath, Version: version, Cause: err}
	}
	return &Resolution{Config: cfg, Engine: eng}, defaulted, nil
}

// Invalidate drops the entry for configPath.
func (c *Cache) Invalidate(configPath string) {
	key := cacheKey(configPath)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func normalizeVersion(v string) string {
	return strings.TrimPrefix(v, "v")
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
