// Package settings loads the host options from the environment and an optional YAML file.
package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/fmtpin/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FMTPIN"

// Option keys. As environment variables they are upper-cased and prefixed, e.g. FMTPIN_CACHE_DIR.
const (
	KeyConfig                = "config"
	KeyRespectVersion        = "respect_version"
	KeyRespectProjectFilters = "respect_project_filters"
	KeyDefaultVersion        = "default_version"
	KeyCacheConfigs          = "cache_configs"
	KeyStrictEngineVersion   = "strict_engine_version"
	KeyWatchConfigs          = "watch_configs"
	KeyReleaseURL            = "release_url"
	KeyCacheDir              = "cache_dir"
	KeyLogLevel              = "log_level"
	KeyLogFormat             = "log_format"
)

// Load reads the options from a fresh viper instance.
func Load() (domain.Options, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads the options from v. Explicit values set on v take precedence
// over the environment, which takes precedence over the config file.
func LoadFrom(v *viper.Viper) (domain.Options, error) {
	defaults := domain.DefaultOptions()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyRespectVersion, defaults.RespectVersion)
	v.SetDefault(KeyRespectProjectFilters, defaults.RespectProjectFilters)
	v.SetDefault(KeyDefaultVersion, defaults.DefaultVersion)
	v.SetDefault(KeyCacheConfigs, defaults.CacheConfigs)
	v.SetDefault(KeyStrictEngineVersion, defaults.StrictEngineVersion)
	v.SetDefault(KeyWatchConfigs, defaults.WatchConfigs)
	v.SetDefault(KeyReleaseURL, defaults.ReleaseURL)
	v.SetDefault(KeyCacheDir, defaultCacheDir())
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return domain.Options{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "path", path)
		}
	}

	opts := domain.Options{
		RespectVersion:        v.GetBool(KeyRespectVersion),
		RespectProjectFilters: v.GetBool(KeyRespectProjectFilters),
		DefaultVersion:        v.GetString(KeyDefaultVersion),
		CacheConfigs:          v.GetBool(KeyCacheConfigs),
		StrictEngineVersion:   v.GetBool(KeyStrictEngineVersion),
		WatchConfigs:          v.GetBool(KeyWatchConfigs),
		ReleaseURL:            strings.TrimRight(v.GetString(KeyReleaseURL), "/"),
		CacheDir:              v.GetString(KeyCacheDir),
		LogLevel:              strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:             strings.ToLower(v.GetString(KeyLogFormat)),
	}

	if opts.DefaultVersion == "" {
		return domain.Options{}, zerr.With(zerr.Wrap(domain.ErrSettingsLoadFailed, "empty value"), "key", KeyDefaultVersion)
	}
	if opts.CacheDir == "" {
		return domain.Options{}, zerr.With(zerr.Wrap(domain.ErrSettingsLoadFailed, "empty value"), "key", KeyCacheDir)
	}
	return opts, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "fmtpin")
}
