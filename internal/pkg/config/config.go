package config

import (
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
)

// Namespace prefixes every environment variable, e.g. ATTENDANCE_WEB_PORT.
const Namespace = "ATTENDANCE"

type Config struct {
	Web struct {
		Port            string        `conf:"default::8080"`
		ReadTimeout     time.Duration `conf:"default:10s"`
		WriteTimeout    time.Duration `conf:"default:30s"`
		ShutdownTimeout time.Duration `conf:"default:10s"`
		AllowedOrigins  []string      `conf:"default:http://localhost:3000;http://localhost:5173"`
	}
	Auth struct {
		JWTKey       string        `conf:"noprint"`
		SessionTTL   time.Duration `conf:"default:24h"`
		CookieSecure bool          `conf:"default:false"`
	}
	DB struct {
		Driver     string `conf:"default:memory,help:memory or postgres"`
		User       string `conf:"default:postgres"`
		Password   string `conf:"default:postgres,noprint"`
		Host       string `conf:"default:localhost"`
		Port       string `conf:"default:5432"`
		Name       string `conf:"default:attendance"`
		DisableTLS bool   `conf:"default:true"`
		Debug      bool   `conf:"default:false"`
	}
	Redis struct {
		Addr     string `conf:"help:redis address for sessions. empty keeps sessions in memory"`
		Password string `conf:"noprint"`
		DB       int    `conf:"default:0"`
	}
	Seed struct {
		Enabled bool `conf:"default:true"`
	}
}

// Parse reads flags from args and ATTENDANCE_* environment variables.
// It returns conf.ErrHelpWanted when --help was asked for.
func Parse(args []string) (Config, error) {
	var cfg Config
	if err := conf.Parse(args, Namespace, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Auth.JWTKey == "" {
		return errors.New("auth jwt key is required (ATTENDANCE_AUTH_JWT_KEY)")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth session ttl must be positive")
	}
	switch c.DB.Driver {
	case "memory", "postgres":
	default:
		return errors.Errorf("unknown db driver %q", c.DB.Driver)
	}
	if len(c.Web.AllowedOrigins) == 0 {
		return errors.New("at least one allowed origin is required")
	}
	return nil
}

// Usage renders the --help text.
func Usage(cfg *Config) string {
	u, err := conf.Usage(Namespace, cfg)
	if err != nil {
		return err.Error()
	}
	return u
}

// String renders the effective configuration without secrets.
func (c *Config) String() string {
	s, err := conf.String(c)
	if err != nil {
		return err.Error()
	}
	return s
}
