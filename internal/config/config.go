package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the service.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Gemini GeminiConfig `yaml:"gemini"`
	Log    LogConfig    `yaml:"log"`
	Limits LimitsConfig `yaml:"limits"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GeminiConfig controls the hosted model client.
type GeminiConfig struct {
	APIKey      string        `yaml:"api_key"`
	Model       string        `yaml:"model"`
	BaseURL     string        `yaml:"base_url"`
	Temperature float32       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LimitsConfig bounds incoming payloads.
type LimitsConfig struct {
	MaxImageBytes     int `yaml:"max_image_bytes"`
	// MaxImageDimension caps the longest side in pixels; 0 forwards uploads unchanged.
	MaxImageDimension int `yaml:"max_image_dimension"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ShutdownTimeout: 15 * time.Second,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.5-flash",
			Temperature: 0.2,
			Timeout:     60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Limits: LimitsConfig{
			MaxImageBytes: 10 << 20,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and finally environment variables.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ModelConfigured reports whether a credential for the hosted model is set.
func (c *Config) ModelConfigured() bool {
	return c.Gemini.APIKey != ""
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	c.Server.Mode = getEnv("GIN_MODE", c.Server.Mode)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	c.Gemini.APIKey = strings.TrimSpace(getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", c.Gemini.APIKey)))
	c.Gemini.Model = getEnv("GEMINI_MODEL", c.Gemini.Model)
	c.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", c.Gemini.BaseURL)

	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid UPSTREAM_TIMEOUT %q: %w", raw, err)
		}
		c.Gemini.Timeout = timeout
	}

	if raw := os.Getenv("MAX_IMAGE_BYTES"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid MAX_IMAGE_BYTES %q: %w", raw, err)
		}
		c.Limits.MaxImageBytes = limit
	}

	if raw := os.Getenv("MAX_IMAGE_DIMENSION"); raw != "" {
		dim, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid MAX_IMAGE_DIMENSION %q: %w", raw, err)
		}
		c.Limits.MaxImageDimension = dim
	}
	return nil
}

func (c *Config) validate() error {
	if c.Limits.MaxImageBytes <= 0 {
		return fmt.Errorf("max image bytes must be positive, got %d", c.Limits.MaxImageBytes)
	}
	if c.Limits.MaxImageDimension < 0 {
		return fmt.Errorf("max image dimension must not be negative, got %d", c.Limits.MaxImageDimension)
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.Gemini.Timeout)
	}
	if c.Gemini.Model == "" {
		return fmt.Errorf("gemini model must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
