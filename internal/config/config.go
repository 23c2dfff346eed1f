package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// devSessionSecret is only accepted when APP_ENV=dev.
const devSessionSecret = "feedback-dev-secret-change-me"

// Config describes the server configuration read from the environment.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   string `envconfig:"PORT" default:"8080"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	MongoURI    string `envconfig:"MONGODB_URI"`
	DBName      string `envconfig:"DB_NAME" default:"feedback"`
	PGDSN       string `envconfig:"PG_DSN"`
	RedisURL    string `envconfig:"REDIS_URL"`

	Session struct {
		Secret       string        `envconfig:"SESSION_SECRET"`
		TTL          time.Duration `envconfig:"SESSION_TTL" default:"24h"`
		CookieName   string        `envconfig:"SESSION_COOKIE" default:"session"`
		CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
	} `envconfig:""`

	RequireAuth bool `envconfig:"REQUIRE_AUTH" default:"true"`
	BcryptCost  int  `envconfig:"BCRYPT_COST" default:"10"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	Notify struct {
		ResendAPIKey string `envconfig:"RESEND_API_KEY"`
		From         string `envconfig:"NOTIFY_FROM" default:"Feedback <onboarding@resend.dev>"`
		To           string `envconfig:"NOTIFY_TO"`
	} `envconfig:""`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if cfg.Session.Secret == "" && cfg.IsDev() {
		cfg.Session.Secret = devSessionSecret
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsDev reports whether the server runs in development mode.
func (c Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// UsesDevSecret reports whether the built-in development session secret is active.
func (c Config) UsesDevSecret() bool {
	return c.Session.Secret == devSessionSecret
}

// Validate checks the requirements of the selected store driver and session settings.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory:
	case DriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI is required for the mongo store driver")
		}
	case DriverPostgres:
		if c.PGDSN == "" {
			return errors.New("PG_DSN is required for the postgres store driver")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET is required outside dev")
	}
	if c.Session.TTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}
