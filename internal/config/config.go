package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL      string        `envconfig:"DATABASE_URL" required:"true"`
	SecretKey        string        `envconfig:"SECRET_KEY" required:"true"`
	Environment      string        `envconfig:"APP_ENV" default:"development"`
	Version          string        `envconfig:"VERSION" default:"dev"`
	SessionTTL       time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	BcryptCost       int           `envconfig:"BCRYPT_COST" default:"12"`
	LoginRateLimit   int           `envconfig:"LOGIN_RATE_LIMIT" default:"5"`
	LoginRateWindow  time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
	RedisAddr        string        `envconfig:"RATE_LIMIT_REDIS_ADDR" default:""`
	RedisPassword    string        `envconfig:"RATE_LIMIT_REDIS_PASSWORD" default:""`
	RedisDB          int           `envconfig:"RATE_LIMIT_REDIS_DB" default:"0"`
	SeedDemoManagers bool          `envconfig:"SEED_DEMO_MANAGERS" default:"false"`
	AutoMigrate      bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

// Load reads an optional .env file and then environment variables into a Config struct.
// Variables already present in the process environment take precedence over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.DatabaseURL = NormalizeDatabaseURL(cfg.DatabaseURL)
	return &cfg, nil
}

// IsProduction reports whether the service runs with production hardening
// (secure cookies, HSTS, HTTPS redirect).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme to postgresql://.
func NormalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return strings.Replace(url, "postgres://", "postgresql://", 1)
	}
	return url
}
