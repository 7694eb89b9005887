package domain

import (
	"encoding/json"
	"maps"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// Dialect selects the variant of a config a file is formatted with.
type Dialect string

const (
	// DialectDefault applies to regular source files.
	DialectDefault Dialect = "default"
	// DialectBuildScript applies to build definitions and scripts.
	DialectBuildScript Dialect = "build-script"
)

// DialectSettingsKey is the settings key carrying the dialect to the engine.
const DialectSettingsKey = "dialect"

var buildScriptExtensions = map[string]struct{}{
	".sbt":  {},
	".sc":   {},
	".mill": {},
}

// DialectFor maps a file name to its dialect by extension.
func DialectFor(filePath string) Dialect {
	ext := strings.ToLower(filepath.Ext(filePath))
	if _, ok := buildScriptExtensions[ext]; ok {
		return DialectBuildScript
	}
	return DialectDefault
}

// Settings is the engine's parsed form of a settings file.
type Settings map[string]any

// ParseSettings decodes the JSON object an engine returns for a settings file.
func ParseSettings(data []byte) (Settings, error) {
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, zerr.Wrap(err, ErrInvalidSettings.Error())
	}
	if s == nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidSettings, "decode settings"), "reason", "settings are not an object")
	}
	return s, nil
}

// ProjectConfig is a settings file resolved and parsed by the engine it pins.
type ProjectConfig struct {
	Path     string
	Version  string
	Settings Settings
	Dialect  Dialect
	filter   *ProjectFilter
}

// NewProjectConfig builds the config for the given settings and compiles its project filter.
func NewProjectConfig(path, version string, settings Settings) (*ProjectConfig, error) {
	var section map[string]any
	if raw, ok := settings["project"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, zerr.With(zerr.Wrap(ErrInvalidProjectFilter, "project section"), "reason", "not an object")
		}
		section = m
	}

	filter, err := NewProjectFilter(section)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	return &ProjectConfig{
		Path:     path,
		Version:  version,
		Settings: settings,
		Dialect:  DialectDefault,
		filter:   filter.WithRoot(root),
	}, nil
}

// IsIncluded reports whether the file is within the project's formatting scope.
// Filter rules see the file both as given and relative to the config's
// directory; a relative filePath is taken relative to that directory.
func (c *ProjectConfig) IsIncluded(filePath string) bool {
	return c.filter.Includes(filePath)
}

// WithDialect returns the config variant for the dialect. The receiver is not modified.
func (c *ProjectConfig) WithDialect(d Dialect) *ProjectConfig {
	if d == c.Dialect {
		return c
	}
	variant := *c
	variant.Dialect = d
	variant.Settings = maps.Clone(c.Settings)
	if variant.Settings == nil {
		variant.Settings = Settings{}
	}
	variant.Settings[DialectSettingsKey] = string(d)
	return &variant
}

// EncodeSettings returns the settings as the JSON document passed to the engine.
func (c *ProjectConfig) EncodeSettings() (string, error) {
	data, err := json.Marshal(c.Settings)
	if err != nil {
		return "", zerr.Wrap(err, ErrInvalidSettings.Error())
	}
	return string(data), nil
}
