package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv copies variables from ./.env into the process environment.
// Variables already set in the environment are left alone; a missing file
// is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// parseEnv overlays values from environment variables:
//
//	PORT             API port (":" is prepended)
//	MONGO_URI        database DSN (DATABASE_DSN takes precedence)
//	DATABASE_DSN     database DSN
//	DATABASE_NAME    Mongo database name
//	JWT_SECRET       token signing secret
//	ACCESS_TOKEN_TTL token lifetime, Go duration syntax
//	BCRYPT_COST      bcrypt work factor
//	CORS_ORIGINS     comma-separated list of allowed origins
//	GRPC_ADDRESS     gRPC health bind address
//	LOG_LEVEL        debug, info, warn or error
//
// Malformed numeric or duration values are ignored.
func parseEnv(c *Config, lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("PORT"); ok {
		c.EndpointAddr = ":" + strings.TrimPrefix(v, ":")
	}
	if v, ok := get("MONGO_URI"); ok {
		c.DatabaseDSN = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		c.DatabaseDSN = v
	}
	if v, ok := get("DATABASE_NAME"); ok {
		c.DatabaseName = v
	}
	if v, ok := get("JWT_SECRET"); ok {
		c.SecretKey = v
	}
	if v, ok := get("ACCESS_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.AccessTokenValidityDuration = d
		}
	}
	if v, ok := get("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = n
		}
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	if v, ok := get("GRPC_ADDRESS"); ok {
		c.EndpointAddrGRPC = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
