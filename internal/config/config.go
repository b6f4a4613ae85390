package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIURL is the backend the web frontend's dev proxy forwarded /api to.
const DefaultAPIURL = "http://localhost:8082"

type Config struct {
	APIURL         string        `env:"SHOPAUTH_API_URL"`
	CacheDir       string        `env:"SHOPAUTH_CACHE_DIR"`
	DBPath         string        `env:"SHOPAUTH_DB_PATH"`
	LogPath        string        `env:"SHOPAUTH_LOG_PATH"`
	RequestTimeout time.Duration `env:"SHOPAUTH_REQUEST_TIMEOUT"`
	ProfileTTL     time.Duration `env:"SHOPAUTH_PROFILE_TTL"`

	// MonitorInterval is how often the session token's expiry is checked.
	MonitorInterval time.Duration `env:"SHOPAUTH_MONITOR_INTERVAL"`
}

func Default() Config {
	return withCacheDir(Config{
		APIURL:          DefaultAPIURL,
		RequestTimeout:  10 * time.Second,
		ProfileTTL:      5 * time.Minute,
		MonitorInterval: 30 * time.Second,
	}, filepath.Join(userConfigDir(), "shopauth"))
}

// Load returns Default overlaid with any SHOPAUTH_* environment variables.
// Paths not set explicitly follow SHOPAUTH_CACHE_DIR.
func Load() (Config, error) {
	cfg := Default()
	defaultDir := cfg.CacheDir
	cfg.CacheDir, cfg.DBPath, cfg.LogPath = "", "", ""
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultDir
	}
	cfg = withCacheDir(cfg, cfg.CacheDir)
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	return cfg, nil
}

func withCacheDir(cfg Config, dir string) Config {
	cfg.CacheDir = dir
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(dir, "cache.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, "debug.log")
	}
	return cfg
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
