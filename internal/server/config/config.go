// Package config handles configuration for the server: defaults, a .env
// file, environment variables, an optional JSON file and command-line flags,
// applied in that order so later sources win.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the notes server.
//
// Fields:
//   - EndpointAddr: bind address of the JSON API.
//   - EndpointAddrGRPC: bind address of the gRPC health service ("" disables it).
//   - DatabaseDSN: mongodb://, postgres:// or memory:// connection string.
//   - DatabaseName: Mongo database used when the DSN carries no path.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - AccessTokenValidityDuration: session token lifetime.
//   - BcryptCost: work factor for password hashes.
//   - CORSOrigins: origins allowed to call the API from a browser.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddr                string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	DatabaseName                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	BcryptCost                  int
	CORSOrigins                 []string
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside of development.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "mongodb://localhost:27017/gophnotes"
	c.DatabaseName = "gophnotes"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = time.Hour
	c.BcryptCost = 10
	c.CORSOrigins = []string{"*"}
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, .env, the environment, an
// optional JSON file (-c/-config) and finally command-line flags.
func LoadConfig() *Config {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadDotEnv()
	parseEnv(cfg, lookup)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
