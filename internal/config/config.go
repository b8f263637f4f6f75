package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// devPlaceholderPassword is accepted by /login for every staff account when
// running in development and no override is configured.
const devPlaceholderPassword = "test1234"

type Config struct {
	Port                     string        `mapstructure:"PORT"`
	Env                      string        `mapstructure:"ENV"`
	LogLevel                 string        `mapstructure:"LOG_LEVEL"`
	DatabaseURL              string        `mapstructure:"DATABASE_URL"`
	DBMaxConns               int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns               int32         `mapstructure:"DB_MIN_CONNS"`
	DBSchema                 string        `mapstructure:"DB_SCHEMA"`
	MigrationsDir            string        `mapstructure:"MIGRATIONS_DIR"`
	RedisURL                 string        `mapstructure:"REDIS_URL"`
	AMQPURL                  string        `mapstructure:"AMQP_URL"`
	AuthSigningKey           string        `mapstructure:"AUTH_SIGNING_KEY"`
	AuthTokenTTL             time.Duration `mapstructure:"AUTH_TOKEN_TTL"`
	LoginPlaceholderPassword string        `mapstructure:"LOGIN_PLACEHOLDER_PASSWORD"`
	CORSOrigins              []string      `mapstructure:"CORS_ORIGINS"`
	ICUCapacity              int           `mapstructure:"ICU_CAPACITY"`
	VentilatorCapacity       int           `mapstructure:"VENTILATOR_CAPACITY"`
	IsolationCapacity        int           `mapstructure:"ISOLATION_CAPACITY"`
	DashboardCacheTTL        time.Duration `mapstructure:"DASHBOARD_CACHE_TTL"`
	RateLimitRPS             float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst           int           `mapstructure:"RATE_LIMIT_BURST"`
	RequestTimeout           time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit                string        `mapstructure:"BODY_LIMIT"`
}

var keys = []string{
	"PORT", "ENV", "LOG_LEVEL",
	"DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_SCHEMA", "MIGRATIONS_DIR",
	"REDIS_URL", "AMQP_URL",
	"AUTH_SIGNING_KEY", "AUTH_TOKEN_TTL", "LOGIN_PLACEHOLDER_PASSWORD",
	"CORS_ORIGINS",
	"ICU_CAPACITY", "VENTILATOR_CAPACITY", "ISOLATION_CAPACITY",
	"DASHBOARD_CACHE_TTL",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REQUEST_TIMEOUT", "BODY_LIMIT",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("MIGRATIONS_DIR", "./migrations")
	v.SetDefault("AUTH_TOKEN_TTL", "8h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("ICU_CAPACITY", 15)
	v.SetDefault("VENTILATOR_CAPACITY", 12)
	v.SetDefault("ISOLATION_CAPACITY", 10)
	v.SetDefault("DASHBOARD_CACHE_TTL", "30s")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("BODY_LIMIT", "1M")

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.LoginPlaceholderPassword == "" && cfg.IsDev() {
		cfg.LoginPlaceholderPassword = devPlaceholderPassword
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SigningKey decodes AUTH_SIGNING_KEY. It returns nil when the key is unset.
func (c *Config) SigningKey() ([]byte, error) {
	if c.AuthSigningKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.AuthSigningKey)
	if err != nil {
		return nil, fmt.Errorf("AUTH_SIGNING_KEY is not valid hex: %w", err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("AUTH_SIGNING_KEY must be at least 32 bytes (64 hex chars), got %d bytes", len(key))
	}
	return key, nil
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if _, err := c.SigningKey(); err != nil {
		return err
	}
	if c.IsProduction() {
		if c.LoginPlaceholderPassword != "" {
			return fmt.Errorf("LOGIN_PLACEHOLDER_PASSWORD must not be set in production")
		}
		if c.AuthSigningKey == "" {
			return fmt.Errorf("AUTH_SIGNING_KEY is required in production")
		}
	}
	if c.ICUCapacity <= 0 || c.VentilatorCapacity <= 0 || c.IsolationCapacity <= 0 {
		return fmt.Errorf("ICU_CAPACITY, VENTILATOR_CAPACITY and ISOLATION_CAPACITY must be positive")
	}
	if c.AuthTokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %s", c.AuthTokenTTL)
	}
	if c.DashboardCacheTTL < 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must not be negative, got %s", c.DashboardCacheTTL)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}
