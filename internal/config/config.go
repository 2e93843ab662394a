package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	FoodAPI   FoodAPIConfig   `yaml:"food_api"`
	Fasting   FastingConfig   `yaml:"fasting"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// FoodAPIConfig points at the external food-lookup service.
type FoodAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (f FoodAPIConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// FastingConfig tunes the background janitor that completes expired fasts.
type FastingConfig struct {
	JanitorSeconds int `yaml:"janitor_interval_seconds"`
}

// JanitorInterval returns how often expired fasts are swept.
func (f FastingConfig) JanitorInterval() time.Duration {
	return time.Duration(f.JanitorSeconds) * time.Second
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix FASTBITE_ and underscore-separated paths:
//
//	FASTBITE_SERVER_HOST, FASTBITE_SERVER_PORT,
//	FASTBITE_DB_HOST, FASTBITE_DB_PORT, FASTBITE_DB_NAME,
//	FASTBITE_DB_USER, FASTBITE_DB_PASSWORD, FASTBITE_DB_SSLMODE,
//	FASTBITE_AUTH_API_KEY, FASTBITE_FOOD_API_URL
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FASTBITE_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("FASTBITE_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FASTBITE_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("FASTBITE_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("FASTBITE_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("FASTBITE_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("FASTBITE_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("FASTBITE_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("FASTBITE_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("FASTBITE_FOOD_API_URL"); v != "" {
		cfg.FoodAPI.BaseURL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.FoodAPI.TimeoutSeconds == 0 {
		cfg.FoodAPI.TimeoutSeconds = 10
	}
	if cfg.Fasting.JanitorSeconds == 0 {
		cfg.Fasting.JanitorSeconds = 60
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
