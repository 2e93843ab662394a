package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "fastbite"
  user: "fastbite"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
food_api:
  base_url: "https://food.example.com"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated and defaults applied.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "fastbite" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "fastbite")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.FoodAPI.BaseURL != "https://food.example.com" {
		t.Errorf("food_api.base_url = %q", cfg.FoodAPI.BaseURL)
	}
	if cfg.FoodAPI.Timeout() != 10*time.Second {
		t.Errorf("food_api timeout default = %v, want 10s", cfg.FoodAPI.Timeout())
	}
	if cfg.Fasting.JanitorInterval() != time.Minute {
		t.Errorf("fasting janitor default = %v, want 1m", cfg.Fasting.JanitorInterval())
	}
}

// TestDSN verifies the PostgreSQL connection string shape, including the
// sslmode fallback.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "fastbite", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/fastbite?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// TestEnvOverride verifies that FASTBITE_ env vars take precedence over YAML
// values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("FASTBITE_DB_HOST", "override-host")
	t.Setenv("FASTBITE_DB_PORT", "9999")
	t.Setenv("FASTBITE_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "override-host" {
		t.Errorf("database.host = %q, want %q", cfg.Database.Host, "override-host")
	}
	if cfg.Database.Port != 9999 {
		t.Errorf("database.port = %d, want 9999", cfg.Database.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
}

// TestValidateMissingFields verifies each required field is enforced.
func TestValidateMissingFields(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no server port", `
database: {host: h, port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"no database host", `
server: {port: 8080}
database: {port: 5432, name: n, user: u}
auth: {api_key: k}
`},
		{"no api key", `
server: {port: 8080}
database: {host: h, port: 5432, name: n, user: u}
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tc.yaml)); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
