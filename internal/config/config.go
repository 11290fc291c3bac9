package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	RosterSourcePostgres = "postgres"
	RosterSourceCSV      = "csv"
	RosterSourceNone     = "none"

	QueueBackendMemory = "memory"
	QueueBackendRedis  = "redis"
)

// App holds the runtime configuration loaded from environment variables
type App struct {
	Env        string `envconfig:"APP_ENV" default:"dev"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8000"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret string        `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	PhoneRegion        string `envconfig:"PHONE_REGION" default:"BR"`
	PhoneRequireMobile bool   `envconfig:"PHONE_REQUIRE_MOBILE" default:"true"`

	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	RateLimitPerMin int      `envconfig:"RATE_LIMIT_PER_MIN" default:"60"`

	RosterSource string `envconfig:"ROSTER_SOURCE" default:"postgres"`
	RosterCSV    string `envconfig:"ROSTER_CSV_PATH" default:"alunos.csv"`

	// CSV upserted into the students table whenever the database is attached
	RosterSeedCSV string `envconfig:"ROSTER_SEED_CSV"`

	QueueBackend string `envconfig:"QUEUE_BACKEND" default:"memory"`
	RedisAddr    string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisKey     string `envconfig:"REDIS_PENDING_KEY" default:"student_intake:pending_submissions"`

	// bcrypt hash of the key the export job must send; empty leaves the drain route open
	ExportKeyHash string `envconfig:"EXPORT_KEY_HASH"`
}

// Load reads App from the environment and validates it
func Load() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings
func (c *App) Validate() error {
	c.RosterSource = strings.ToLower(strings.TrimSpace(c.RosterSource))
	c.QueueBackend = strings.ToLower(strings.TrimSpace(c.QueueBackend))

	switch c.RosterSource {
	case RosterSourcePostgres, RosterSourceCSV, RosterSourceNone:
	default:
		return fmt.Errorf("invalid ROSTER_SOURCE %q: want postgres, csv or none", c.RosterSource)
	}
	switch c.QueueBackend {
	case QueueBackendMemory, QueueBackendRedis:
	default:
		return fmt.Errorf("invalid QUEUE_BACKEND %q: want memory or redis", c.QueueBackend)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY not set in environment")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether gin should run in release mode
func (c *App) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
