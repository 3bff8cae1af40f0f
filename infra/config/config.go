// Package config loads reviewlist settings from defaults, an optional YAML
// file, a .env file and REVIEWLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceFixture = "fixture" // reviews bundled into the binary
	SourceFile    = "file"
	SourceHTTP    = "http"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REVIEWLIST_"

// MaxPageLimit is the largest page size the review API serves.
const MaxPageLimit = 100

// Config holds application-level configuration.
type Config struct {
	Source  SourceConfig `yaml:"source"`
	Paging  PagingConfig `yaml:"paging"`
	Images  ImagesConfig `yaml:"images"`
	Server  ServerConfig `yaml:"server"`
	Log     LogConfig    `yaml:"log"`
	DataDir string       `yaml:"data_dir"`
}

// SourceConfig selects where reviews come from.
type SourceConfig struct {
	Kind       string        `yaml:"kind"`        // fixture, file or http
	Path       string        `yaml:"path"`        // JSON file for kind=file
	URL        string        `yaml:"url"`         // endpoint for kind=http
	LatencyMin time.Duration `yaml:"latency_min"` // simulated latency for fixture and file sources
	LatencyMax time.Duration `yaml:"latency_max"`
}

// PagingConfig tunes page loading.
type PagingConfig struct {
	Limit        int     `yaml:"limit"`
	ScreensAhead float64 `yaml:"screens_ahead"`
}

// ImagesConfig tunes avatar and photo loading.
type ImagesConfig struct {
	CacheSize int           `yaml:"cache_size"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ServerConfig configures the mock review API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty means <data_dir>/reviewlist.log
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Source: SourceConfig{
			Kind:       SourceFixture,
			LatencyMin: 100 * time.Millisecond,
			LatencyMax: time.Second,
		},
		Paging: PagingConfig{
			Limit:        20,
			ScreensAhead: 2.5,
		},
		Images: ImagesConfig{
			CacheSize: 128,
			Timeout:   6 * time.Second,
		},
		Server: ServerConfig{Addr: ":8089"},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultDataDir returns ~/.config/reviewlist.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "reviewlist"), nil
}

// Load builds the configuration. A .env file in the working directory is
// loaded first without overriding variables already set. A missing config
// file is not an error. The result is not validated; callers apply their own
// overrides and then call Validate.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}
	return &cfg, nil
}

// LogFile returns the configured log file or the default inside DataDir.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "reviewlist.log")
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs criterio.FieldErrorsBuilder

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = errs.Append(EnvPrefix+name, err)
				return
			}
			*dst = n
		}
	}
	float := func(name string, dst *float64) {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = errs.Append(EnvPrefix+name, err)
				return
			}
			*dst = f
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = errs.Append(EnvPrefix+name, err)
				return
			}
			*dst = d
		}
	}

	str("SOURCE_KIND", &c.Source.Kind)
	str("SOURCE_PATH", &c.Source.Path)
	str("SOURCE_URL", &c.Source.URL)
	dur("SOURCE_LATENCY_MIN", &c.Source.LatencyMin)
	dur("SOURCE_LATENCY_MAX", &c.Source.LatencyMax)
	num("PAGING_LIMIT", &c.Paging.Limit)
	float("PAGING_SCREENS_AHEAD", &c.Paging.ScreensAhead)
	num("IMAGES_CACHE_SIZE", &c.Images.CacheSize)
	dur("IMAGES_TIMEOUT", &c.Images.Timeout)
	str("SERVER_ADDR", &c.Server.Addr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FILE", &c.Log.File)
	str("DATA_DIR", &c.DataDir)

	return errs.ToError()
}
