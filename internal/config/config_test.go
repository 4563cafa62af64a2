package config

import "testing"

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", t.TempDir()+"/missing.yaml")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Port != 6543 {
		t.Fatalf("database override not applied: %+v", cfg.Database)
	}
	if cfg.Database.Driver != "memory" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Generative.APIKey != "g-key" {
		t.Fatalf("generative key = %q", cfg.Generative.APIKey)
	}
	if cfg.Server.Port != 8080 || cfg.JWT.ExpirationHours != 24 {
		t.Fatalf("defaults not applied: port=%d exp=%d", cfg.Server.Port, cfg.JWT.ExpirationHours)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("CONFIG_FILE", t.TempDir()+"/missing.yaml")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT secret")
	}
}

func TestDatabaseDSN(t *testing.T) {
	var cfg Config
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.Name = "staffing_db"
	cfg.Database.SSLMode = "disable"

	want := "postgres://app:pw@localhost:5432/staffing_db?sslmode=disable"
	if got := cfg.DatabaseDSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
