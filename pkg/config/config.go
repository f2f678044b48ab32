package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendDurable   = "durable"
	BackendEphemeral = "ephemeral"

	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type AppConfig struct {
	// Backend selects the persistence provider once at start: durable or ephemeral.
	Backend string `yaml:"backend"`

	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	Environment string `yaml:"environment"`
}

type DatabaseConfig struct {
	Dialect string `yaml:"dialect"`
	// URL is the postgres connection string; Path is the sqlite file or DSN.
	URL  string `yaml:"url"`
	Path string `yaml:"path"`

	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	LogStatements bool `yaml:"log_statements"`
}

type SessionConfig struct {
	Store    string        `yaml:"store"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name"`
	ServiceVersion string `yaml:"service_version"`
	OTLPEndpoint   string `yaml:"otlp_endpoint"`
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Backend: BackendDurable,
		Database: DatabaseConfig{
			Dialect:         DialectSQLite,
			Path:            "todolists.db",
			MaxOpenConns:    100,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Session: SessionConfig{
			Store: SessionStoreMemory,
			TTL:   24 * time.Hour,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "todolists",
			ServiceVersion: "1.0.0",
		},
		Environment: "development",
	}
}

// Load starts from the defaults, overlays the YAML file at path (when path is
// not empty) and then the environment.
func Load(path string) (*AppConfig, error) {
	cfg := GetDefaultConfig()

	if path != "" {
		f, err := os.Open(path)

		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}

		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	if backend := os.Getenv("TODOLISTS_BACKEND"); backend != "" {
		c.Backend = backend
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.Dialect = DialectPostgres
		c.Database.URL = url
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		c.Database.Dialect = DialectSQLite
		c.Database.Path = path
	}

	if url := os.Getenv("REDIS_URL"); url != "" {
		c.Session.Store = SessionStoreRedis
		c.Session.RedisURL = url
	}

	if endpoint := os.Getenv("OTLP_ENDPOINT"); endpoint != "" {
		c.Telemetry.OTLPEndpoint = endpoint
	}

	if os.Getenv("APP_ENV") == "production" {
		c.Environment = "production"
	}
}

func (c *AppConfig) Validate() error {
	switch c.Backend {
	case BackendDurable:
		switch c.Database.Dialect {
		case DialectSQLite:
			if c.Database.Path == "" {
				return fmt.Errorf("database.path is required for the %s dialect", DialectSQLite)
			}
		case DialectPostgres:
			if c.Database.URL == "" {
				return fmt.Errorf("database.url is required for the %s dialect", DialectPostgres)
			}
		default:
			return fmt.Errorf("unknown database dialect %q", c.Database.Dialect)
		}
	case BackendEphemeral:
		switch c.Session.Store {
		case SessionStoreMemory:
		case SessionStoreRedis:
			if c.Session.RedisURL == "" {
				return fmt.Errorf("session.redis_url is required for the %s store", SessionStoreRedis)
			}
		default:
			return fmt.Errorf("unknown session store %q", c.Session.Store)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	return nil
}
