package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// minJWTSecretLen is the shortest HS256 secret accepted.
const minJWTSecretLen = 32

type Config struct {
	DatabaseURL    string
	DBMaxConns     int32
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	// DevMode exposes internal error detail in API responses.
	DevMode     bool
	CORSOrigins []string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	TLSCertFile     string
	TLSKeyFile      string
	TLSClientCAFile string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		HTTPListenAddr:  getEnv("HTTP_LISTEN_ADDR", ":3000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ServiceName:     getEnv("SERVICE_NAME", "crm-api"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "insightcrm"),
		TLSCertFile:     getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:      getEnv("TLS_KEY_FILE", ""),
		TLSClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
	}

	var err error
	if cfg.DevMode, err = strconv.ParseBool(getEnv("DEV_MODE", "false")); err != nil {
		return nil, fmt.Errorf("parse DEV_MODE: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("parse JWT_TTL: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "0"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse DB_MAX_CONNS: %w", err)
	}
	cfg.DBMaxConns = int32(maxConns)

	return cfg, nil
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL is required")
	}
	if c.HTTPListenAddr == "" {
		problems = append(problems, "HTTP_LISTEN_ADDR is required")
	}
	switch {
	case c.JWTSecret == "":
		problems = append(problems, "JWT_SECRET is required")
	case len(c.JWTSecret) < minJWTSecretLen:
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minJWTSecretLen))
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, "JWT_TTL must be positive")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		problems = append(problems, "TLS_CERT_FILE and TLS_KEY_FILE must both be set")
	}
	if c.TLSClientCAFile != "" && c.TLSCertFile == "" {
		problems = append(problems, "TLS_CLIENT_CA_FILE requires TLS_CERT_FILE and TLS_KEY_FILE")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
