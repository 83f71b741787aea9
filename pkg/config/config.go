package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"kyber-portal/pkg/form"

	"github.com/goccy/go-yaml"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig `yaml:"server"`
	API      APIConfig    `yaml:"api"`
	Submit   SubmitConfig `yaml:"submit"`
	LogLevel string       `yaml:"log_level"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// APIConfig points at the messaging backend's account API
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is a Go duration string; empty or "0" means no timeout.
	Timeout string `yaml:"timeout"`
}

// SubmitConfig controls the form submission flow
type SubmitConfig struct {
	Strategy       string `yaml:"strategy"`
	RedirectDelay  string `yaml:"redirect_delay"`
	LoginPage      string `yaml:"login_page"`
	DedupeInFlight bool   `yaml:"dedupe_in_flight"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 3000,
		},
		API: APIConfig{
			BaseURL: "http://localhost:8080",
		},
		Submit: SubmitConfig{
			Strategy:      "remote",
			RedirectDelay: "2s",
			LoginPage:     form.DefaultLoginPage,
		},
		LogLevel: "info",
	}
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	// Override with environment variables
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides overrides configuration with environment variables
func applyEnvOverrides(cfg *Config) error {
	if host := os.Getenv("PORTAL_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORTAL_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if baseURL := os.Getenv("PORTAL_API_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if strategy := os.Getenv("PORTAL_STRATEGY"); strategy != "" {
		cfg.Submit.Strategy = strategy
	}
	if delay := os.Getenv("PORTAL_REDIRECT_DELAY"); delay != "" {
		cfg.Submit.RedirectDelay = delay
	}
	if dedupe := os.Getenv("PORTAL_DEDUPE_IN_FLIGHT"); dedupe != "" {
		b, err := strconv.ParseBool(dedupe)
		if err != nil {
			return fmt.Errorf("invalid PORTAL_DEDUPE_IN_FLIGHT %q: %w", dedupe, err)
		}
		cfg.Submit.DedupeInFlight = b
	}
	return nil
}

// Validate checks the values that are parsed lazily
func (c *Config) Validate() error {
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.RedirectDelay(); err != nil {
		return err
	}
	if _, err := c.APITimeout(); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	return nil
}

// Strategy returns the parsed submission strategy
func (c *Config) Strategy() (form.Strategy, error) {
	return form.ParseStrategy(c.Submit.Strategy)
}

// RedirectDelay returns the delay before navigating to the login page
func (c *Config) RedirectDelay() (time.Duration, error) {
	return parseDuration("submit.redirect_delay", c.Submit.RedirectDelay, form.DefaultRedirectDelay)
}

// APITimeout returns the per-request timeout of the API client
func (c *Config) APITimeout() (time.Duration, error) {
	return parseDuration("api.timeout", c.API.Timeout, 0)
}

// Addr returns the listen address of the portal
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return d, nil
}

// Save saves configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
