package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	koanftoml "github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/archmaint/archmaint/pkg/errors"
)

const envPrefix = "ARCHMAINT_"

// systemConfigPath is a var so tests can point it elsewhere.
var systemConfigPath = "/etc/archmaint/config.toml"

// Load resolves the layered configuration and unmarshals it into Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, koanftoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. System config
	if _, err := os.Stat(systemConfigPath); err == nil {
		if err := k.Load(file.Provider(systemConfigPath), koanftoml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load system config from %s", systemConfigPath)
		}
	}

	// 3. User config, TOML preferred over YAML
	for _, candidate := range userConfigCandidates() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		parser := parserFor(candidate)
		if err := k.Load(file.Provider(candidate), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load user config from %s", candidate)
		}
		break
	}

	// 4. Environment overrides: ARCHMAINT_NEWS__URL -> news.url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the built-in configuration with no file or env overrides.
func Default() *Config {
	k := koanf.New(".")
	// The embedded defaults are compiled in and always parse.
	_ = k.Load(&rawBytesProvider{bytes: defaultConfig}, koanftoml.Parser())

	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// UserConfigDir returns the archmaint directory under the XDG config home.
func UserConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "archmaint")
}

// StateDir returns the archmaint directory under the XDG state home.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "archmaint")
}

func userConfigCandidates() []string {
	dir := UserConfigDir()
	return []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return koanfyaml.Parser()
	default:
		return koanftoml.Parser()
	}
}

func validate(cfg *Config) error {
	if cfg.Clean.CacheKeep < 0 {
		return errors.Newf(errors.ErrConfigValid,
			"clean.cache_keep must be >= 0, got %d", cfg.Clean.CacheKeep)
	}
	if cfg.Snapshot.MinFreePercent < 0 || cfg.Snapshot.MinFreePercent > 100 {
		return errors.Newf(errors.ErrConfigValid,
			"snapshot.min_free_percent must be within 0-100, got %d", cfg.Snapshot.MinFreePercent)
	}
	if cfg.News.Limit < 1 {
		return errors.Newf(errors.ErrConfigValid,
			"news.limit must be >= 1, got %d", cfg.News.Limit)
	}
	if cfg.News.TimeoutSeconds < 1 {
		return errors.Newf(errors.ErrConfigValid,
			"news.timeout_seconds must be >= 1, got %d", cfg.News.TimeoutSeconds)
	}
	if len(cfg.Pacfiles.Roots) == 0 {
		return errors.New(errors.ErrConfigValid, "pacfiles.roots must not be empty")
	}
	return nil
}
