package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/together/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-p", "-l", "-t", "-i", "-g", "-v"}

// parseFlags overlays cfg with the short flags below. Other arguments (cobra
// subcommands and their flags) are filtered out with flagx.FilterArgs.
//
//	-a string    REST API base URL
//	-d string    path of the local SQLite database
//	-p string    platform: web or mobile
//	-l string    locale, e.g. fr or en
//	-t duration  HTTP request timeout
//	-i int       online check interval (seconds)
//	-g           drop superseded session resolutions
//	-v string    log level
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("together", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "REST API base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.Platform, "p", cfg.Platform, "platform (web|mobile)")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "locale")
	fs.DurationVar(&cfg.HTTPTimeout, "t", cfg.HTTPTimeout, "HTTP request timeout")
	interval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.StaleRefetchGuard, "g", cfg.StaleRefetchGuard, "drop superseded session resolutions")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// -i counts whole seconds and overrides earlier layers only when given.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*interval) * time.Second
		}
	})
	return nil
}
