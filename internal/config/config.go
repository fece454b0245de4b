package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/kvstore"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Store    StoreConfig
	Admin    AdminConfig
	AI       AIConfig
	Promo    PromoConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
}

type StoreConfig struct {
	Backend string // memory, sqlite or bolt
	Path    string
}

type AdminConfig struct {
	Password     string
	ErrorDisplay time.Duration
}

type AIConfig struct {
	APIKey    string
	Model     string
	Timeout   time.Duration
	RateLimit float64 // requests per second per client
	RateBurst int
}

// Enabled reports whether an API key was configured
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

type PromoConfig struct {
	Sources []string // files or http(s) URLs, optionally gzipped
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Log: LogConfig{
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 64),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 7),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", kvstore.BackendSQLite)),
			Path:    getEnv("STORE_PATH", "fruit-market.db"),
		},
		Admin: AdminConfig{
			Password:     getEnv("ADMIN_PASSWORD", "owner123"),
			ErrorDisplay: getEnvAsDuration("ADMIN_ERROR_DISPLAY", 2*time.Second),
		},
		AI: AIConfig{
			APIKey:    getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:     getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			Timeout:   getEnvAsDuration("AI_TIMEOUT", 30*time.Second),
			RateLimit: getEnvAsFloat("AI_RATE_LIMIT", 1),
			RateBurst: getEnvAsInt("AI_RATE_BURST", 5),
		},
		Promo: PromoConfig{
			Sources: getEnvAsSlice("PROMO_FILES", nil),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Backend {
	case kvstore.BackendMemory:
	case kvstore.BackendSQLite, kvstore.BackendBolt:
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required for the %s backend", c.Store.Backend)
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, sqlite, or bolt)", c.Store.Backend)
	}

	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD must not be empty")
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive")
	}
	if c.AI.RateLimit <= 0 || c.AI.RateBurst < 1 {
		return fmt.Errorf("AI_RATE_LIMIT must be positive and AI_RATE_BURST at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
