// Package config loads the settings of the notes CLI: built-in defaults,
// then an optional JSON file (-c/-config), then command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the notes CLI.
//
//   - ServerURL: base URL of the notes API.
//   - RequestTimeout: per-request deadline.
//   - TokenFile: where the session token is kept between runs.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenFile      string
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gophnotes-token"
	}
	return filepath.Join(dir, "gophnotes", "token")
}
