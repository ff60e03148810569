package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/together/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Intervals use timex.Duration so they can
// be written as "5s" or as integer nanoseconds.
type fileConfig struct {
	ServerBaseURL       string         `json:"server_url" yaml:"server_url"`
	DatabasePath        string         `json:"db_path" yaml:"db_path"`
	StoreSecret         string         `json:"store_secret" yaml:"store_secret"`
	Platform            string         `json:"platform" yaml:"platform"`
	Locale              string         `json:"locale" yaml:"locale"`
	HTTPTimeout         timex.Duration `json:"http_timeout" yaml:"http_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	StaleRefetchGuard   bool           `json:"stale_refetch_guard" yaml:"stale_refetch_guard"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	LogFormat           string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the keys present in the file at path. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	fc := fileConfig{
		ServerBaseURL:       cfg.ServerBaseURL,
		DatabasePath:        cfg.DatabasePath,
		StoreSecret:         cfg.StoreSecret,
		Platform:            cfg.Platform,
		Locale:              cfg.Locale,
		HTTPTimeout:         timex.Duration{Duration: cfg.HTTPTimeout},
		OnlineCheckInterval: timex.Duration{Duration: cfg.OnlineCheckInterval},
		StaleRefetchGuard:   cfg.StaleRefetchGuard,
		LogLevel:            cfg.LogLevel,
		LogFormat:           cfg.LogFormat,
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.ServerBaseURL = fc.ServerBaseURL
	cfg.DatabasePath = fc.DatabasePath
	cfg.StoreSecret = fc.StoreSecret
	cfg.Platform = fc.Platform
	cfg.Locale = fc.Locale
	cfg.HTTPTimeout = fc.HTTPTimeout.Duration
	cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	cfg.StaleRefetchGuard = fc.StaleRefetchGuard
	cfg.LogLevel = fc.LogLevel
	cfg.LogFormat = fc.LogFormat
	return nil
}
