package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port              string        `yaml:"port"`
	APIURL            string        `yaml:"api_url"`
	APITimeout        time.Duration `yaml:"api_timeout"`
	JWKSURL           string        `yaml:"jwks_url"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
	CookieSecure      bool          `yaml:"cookie_secure"`
	AuthRatePerMinute int           `yaml:"auth_rate_per_minute"`
	Environment       string        `yaml:"environment"`
	LogLevel          string        `yaml:"log_level"`
}

// LoadConfig reads the optional YAML file named by CONFIG_FILE and then lets
// environment variables override it.
func LoadConfig() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnvWithDefault("PORT", cfg.Port)
	cfg.APIURL = strings.TrimRight(getEnvWithDefault("API_URL", cfg.APIURL), "/")
	cfg.APITimeout = getEnvAsDuration("API_TIMEOUT", cfg.APITimeout)
	cfg.JWKSURL = getEnvWithDefault("JWKS_URL", cfg.JWKSURL)
	cfg.CookieSecure = getEnvAsBool("COOKIE_SECURE", cfg.CookieSecure)
	cfg.AuthRatePerMinute = getEnvAsInt("AUTH_RATE_PER_MINUTE", cfg.AuthRatePerMinute)
	cfg.Environment = getEnvWithDefault("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", cfg.LogLevel)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:              "8080",
		APIURL:            "http://localhost:5000",
		APITimeout:        15 * time.Second,
		AllowedOrigins:    []string{"http://localhost:3000"},
		AuthRatePerMinute: 10,
		Environment:       "development",
		LogLevel:          "info",
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_URL must be an absolute URL, got %q", c.APIURL)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.AuthRatePerMinute <= 0 {
		return fmt.Errorf("AUTH_RATE_PER_MINUTE must be positive")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
