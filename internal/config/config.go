package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Dispense merge policies.
const (
	DispenseAllOrNothing = "all_or_nothing"
	DispensePerItem      = "per_item"
)

// Config holds application level configuration loaded from the environment
// and an optional .env file.
type Config struct {
	Port             string        `mapstructure:"PORT"`
	Env              string        `mapstructure:"ENV"`
	APIBaseURL       string        `mapstructure:"API_BASE_URL"`
	APITimeout       time.Duration `mapstructure:"API_TIMEOUT"`
	SessionStore     string        `mapstructure:"SESSION_STORE"`
	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisDB          int           `mapstructure:"REDIS_DB"`
	RedisPass        string        `mapstructure:"REDIS_PASSWORD"`
	SessionKeyPrefix string        `mapstructure:"SESSION_KEY_PREFIX"`
	AuditDriver      string        `mapstructure:"AUDIT_DRIVER"`
	AuditDSN         string        `mapstructure:"AUDIT_DSN"`
	DispenseMerge    string        `mapstructure:"DISPENSE_MERGE"`
	LogLevel         string        `mapstructure:"LOG_LEVEL"`
	LogFormat        string        `mapstructure:"LOG_FORMAT"`
	SwaggerHost      string        `mapstructure:"SWAGGER_HOST"`
}

var keys = []string{
	"PORT", "ENV", "API_BASE_URL", "API_TIMEOUT", "SESSION_STORE",
	"REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD", "SESSION_KEY_PREFIX",
	"AUDIT_DRIVER", "AUDIT_DSN", "DISPENSE_MERGE", "LOG_LEVEL", "LOG_FORMAT",
	"SWAGGER_HOST",
}

// Load builds Config with sensible defaults. A missing .env file is not an
// error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("API_BASE_URL", "http://localhost:8000/api")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_KEY_PREFIX", "medidesk:session:")
	v.SetDefault("DISPENSE_MERGE", DispenseAllOrNothing)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg, nil
}

// IsDev reports whether the portal runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AuditEnabled reports whether an audit database is configured.
func (c *Config) AuditEnabled() bool {
	return c.AuditDriver != ""
}

// Validate rejects unknown enum values and incomplete settings.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.APITimeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative, got %s", c.APITimeout)
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.SessionStore)
	}
	if c.SessionStore == SessionStoreRedis && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when SESSION_STORE is %q", SessionStoreRedis)
	}
	switch c.AuditDriver {
	case "", "mysql", "postgres":
	default:
		return fmt.Errorf("AUDIT_DRIVER must be empty, \"mysql\" or \"postgres\", got %q", c.AuditDriver)
	}
	if c.AuditEnabled() && c.AuditDSN == "" {
		return fmt.Errorf("AUDIT_DSN is required when AUDIT_DRIVER is %q", c.AuditDriver)
	}
	switch c.DispenseMerge {
	case DispenseAllOrNothing, DispensePerItem:
	default:
		return fmt.Errorf("DISPENSE_MERGE must be %q or %q, got %q", DispenseAllOrNothing, DispensePerItem, c.DispenseMerge)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	return nil
}
