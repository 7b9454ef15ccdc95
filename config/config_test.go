package config

import "testing"

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without DB_PASSWORD")
	}

	t.Setenv("DB_PASSWORD", "pw")
	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.JWTSecret != "secret" || cfg.DBPassword != "pw" {
		t.Fatal("Load() did not pick up secrets from the environment")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DBPort != 5432 {
		t.Fatalf("DBPort = %d, want 5432", cfg.DBPort)
	}

	t.Setenv("DB_PORT", "6543")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DBPort != 6543 {
		t.Fatalf("DBPort = %d, want 6543", cfg.DBPort)
	}
}
