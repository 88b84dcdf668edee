package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Runtime modes. Production tightens cookie and origin policy.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	JWTSecret         string
	JWTExpiresIn      time.Duration
	CookieExpiresDays int
	FrontendOrigin    string
	Mode              string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/authbase?charset=utf8mb4&parseTime=True&loc=Local"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CookieExpiresDays: getEnvInt("COOKIE_EXPIRES_DAYS", 7),
		FrontendOrigin:    os.Getenv("FRONTEND_ORIGIN"),
		Mode:              getEnv("APP_ENV", ModeDevelopment),
	}

	// Defaults keep cookie lifetime and token TTL at the same 7 days; when
	// overriding one, override the other to match.
	ttl, err := parseDuration(getEnv("JWT_EXPIRES_IN", "7d"))
	if err != nil {
		return nil, fmt.Errorf("parse JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = ttl

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Mode != ModeDevelopment && cfg.Mode != ModeProduction {
		return nil, fmt.Errorf("APP_ENV must be %q or %q, got %q", ModeDevelopment, ModeProduction, cfg.Mode)
	}
	if cfg.IsProduction() && cfg.FrontendOrigin == "" {
		return nil, fmt.Errorf("FRONTEND_ORIGIN is required in production")
	}

	return cfg, nil
}

// IsProduction reports whether the production cookie/origin policy applies.
func (c *Config) IsProduction() bool {
	return c.Mode == ModeProduction
}

// parseDuration parses a Go duration string, additionally accepting a "d"
// suffix for days (e.g. "7d"), which time.ParseDuration does not know.
func parseDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
