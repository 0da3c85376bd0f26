package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_KEY", "secret")

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Web.Port != ":8080" || cfg.DB.Driver != "memory" || cfg.Auth.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Web.AllowedOrigins) != 2 || !cfg.Seed.Enabled {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseRequiresJWTKey(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_KEY", "")

	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error without a jwt key")
	}
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_KEY", "secret")
	t.Setenv("ATTENDANCE_DB_DRIVER", "postgres")

	cfg, err := Parse([]string{"--web-port=:9090"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Web.Port != ":9090" || cfg.DB.Driver != "postgres" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	t.Setenv("ATTENDANCE_AUTH_JWT_KEY", "secret")
	t.Setenv("ATTENDANCE_DB_DRIVER", "sqlite")

	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
