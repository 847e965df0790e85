package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/clubportal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the portal API
//	-i int      registration poll interval in seconds
//	-d string   path of the local SQLite store
//
// Only these flags are looked at; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-i", "-d"})

	fs := flag.NewFlagSet("clubportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "base URL of the portal API")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local store")
	poll := fs.Int("i", int(cfg.PollInterval.Seconds()), "registration poll interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.PollInterval = time.Duration(*poll) * time.Second
	return nil
}
