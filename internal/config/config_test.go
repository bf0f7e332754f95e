package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFrom_Defaults(t *testing.T) {
	path := writeConfig(t, "database:\n  dsn: postgres://u:p@localhost:5432/olympics\n")

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Schedule.LivePollInterval != 30*time.Second {
		t.Errorf("live_poll_interval = %v, want 30s", cfg.Schedule.LivePollInterval)
	}
	if cfg.Schedule.UpcomingLimit != 10 || cfg.Schedule.TopStandingsLimit != 5 {
		t.Errorf("limits = %d/%d, want 10/5", cfg.Schedule.UpcomingLimit, cfg.Schedule.TopStandingsLimit)
	}
	if cfg.Rounds.StrictTransitions {
		t.Error("strict_transitions should default to false")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("database.driver = %q, want postgres", cfg.Database.Driver)
	}
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/olympics" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\nauth:\n  admin_password: from-yaml\n")
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("DATABASE_DSN", "postgres://env@localhost/db")

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Auth.AdminPassword != "from-env" {
		t.Errorf("admin_password = %q, want from-env", cfg.Auth.AdminPassword)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Database.DSN != "postgres://env@localhost/db" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
}

func TestLoadConfigFrom_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
