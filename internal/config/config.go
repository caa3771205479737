package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Export   ExportConfig
	Jobs     JobsConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int      `env:"APP_PORT"        envDefault:"8080"`
	Env            string   `env:"APP_ENV"         envDefault:"development"`
	LogLevel       string   `env:"LOG_LEVEL"       envDefault:"info"`
	Timezone       string   `env:"APP_TIMEZONE"    envDefault:"Local"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER"      envDefault:"sqlite"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"attendance.db"`
	Host       string `env:"DB_HOST"        envDefault:"localhost"`
	Port       int    `env:"DB_PORT"        envDefault:"5432"`
	User       string `env:"DB_USER"        envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME"        envDefault:"attendance"`
	SSLMode    string `env:"DB_SSL_MODE"    envDefault:"disable"`
}

// AdminConfig holds the admin gate secret and the session token settings.
// Password may be plain text or a bcrypt hash.
type AdminConfig struct {
	Password    string        `env:"ADMIN_PASSWORD"     envDefault:"0824"`
	TokenSecret string        `env:"ADMIN_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"ADMIN_TOKEN_TTL"    envDefault:"30m"`
}

type ExportConfig struct {
	Dir string `env:"EXPORT_DIR" envDefault:"exports"`
}

// JobsConfig sets the intervals of the background maintenance jobs.
type JobsConfig struct {
	StatsBroadcastInterval time.Duration `env:"STATS_BROADCAST_INTERVAL" envDefault:"1m"`
	TokenPruneInterval     time.Duration `env:"TOKEN_PRUNE_INTERVAL"     envDefault:"15m"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required")
	}
	if c.Admin.TokenSecret == "" {
		return fmt.Errorf("ADMIN_TOKEN_SECRET is required")
	}
	if c.Admin.TokenTTL <= 0 {
		return fmt.Errorf("ADMIN_TOKEN_TTL must be positive")
	}
	if c.Jobs.StatsBroadcastInterval <= 0 || c.Jobs.TokenPruneInterval <= 0 {
		return fmt.Errorf("job intervals must be positive")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("EXPORT_DIR is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the timezone used for calendar days.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
