package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dmitrijs2005/together/internal/flagx"
)

const (
	PlatformWeb    = "web"
	PlatformMobile = "mobile"
)

// Config holds runtime settings for the Together client.
//
// Fields:
//   - ServerBaseURL: root of the REST API, e.g. http://127.0.0.1:8000/api/.
//   - DatabasePath: SQLite file holding credentials and the cached identity.
//   - StoreSecret: when set, stored values are encrypted with a key derived from it.
//   - Platform: "web" or "mobile"; web-only areas are blocked on mobile.
//   - Locale: BCP 47 tag for user-facing strings.
//   - HTTPTimeout: per-request timeout of the REST client.
//   - OnlineCheckInterval: how often the shell probes server reachability.
//   - StaleRefetchGuard: drop results of superseded session resolutions.
//   - LogLevel / LogFormat: slog level and "text" or "json".
type Config struct {
	ServerBaseURL       string        `env:"SERVER_URL"`
	DatabasePath        string        `env:"DB_PATH"`
	StoreSecret         string        `env:"STORE_SECRET"`
	Platform            string        `env:"PLATFORM"`
	Locale              string        `env:"LOCALE"`
	HTTPTimeout         time.Duration `env:"HTTP_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	StaleRefetchGuard   bool          `env:"STALE_REFETCH_GUARD"`
	LogLevel            string        `env:"LOG_LEVEL"`
	LogFormat           string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api/"
	c.DatabasePath = "together.db"
	c.StoreSecret = ""
	c.Platform = PlatformWeb
	c.Locale = "fr"
	c.HTTPTimeout = 10 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.StaleRefetchGuard = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then the config file named by
// -c/-config (if any), then TOGETHER_* environment variables, then flags.
// Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFile(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromOS is LoadConfig over the process arguments.
func LoadFromOS() (*Config, error) {
	return LoadConfig(os.Args[1:])
}

func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.ServerBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("server url %q must be absolute", c.ServerBaseURL))
	}
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if c.Platform != PlatformWeb && c.Platform != PlatformMobile {
		errs = append(errs, fmt.Errorf("platform %q must be %q or %q", c.Platform, PlatformWeb, PlatformMobile))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("http timeout must be positive"))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online check interval must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsWeb() bool {
	return c.Platform == PlatformWeb
}
