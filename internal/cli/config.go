package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/docweave/docweave/pkg/cache"
	"github.com/docweave/docweave/pkg/render"
)

// Config holds the optional user configuration loaded from
// ~/.config/docweave/config.toml. Flags always override it.
type Config struct {
	// Boundary is the default root boundary directory.
	Boundary string `toml:"boundary"`

	// Mode is the default render mode ("flat" or "hierarchical").
	Mode string `toml:"mode"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the Redis server for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// defaultConfig is what loadConfig returns when no config file exists.
func defaultConfig() Config {
	return Config{
		Mode:  render.ModeFlat,
		Cache: CacheConfig{Backend: "file"},
	}
}

// configPath returns the path of the user config file.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docweave", "config.toml"), nil
}

// loadConfig reads the user config file. A missing file is not an error;
// defaults are returned instead.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Mode == "" {
		cfg.Mode = render.ModeFlat
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	return cfg, nil
}

// cacheDir returns the render cache directory for the file backend.
func cacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "docweave"), nil
}

// openCache creates the render cache selected by the configuration.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		addr := cfg.RedisAddr
		if addr == "" {
			addr = "localhost:6379"
		}
		return cache.NewRedisCache(ctx, addr)
	default:
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
}
