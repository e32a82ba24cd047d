package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment variables.
//
// Sanity and Stripe credentials are deliberately not validated here: endpoints
// that need a missing credential answer with a descriptive 500 at request
// time, so the rest of the API keeps working on a partially configured deploy.
type Config struct {
	Server   ServerConfig
	Sanity   SanityConfig
	Stripe   StripeConfig
	Frontend FrontendConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// SanityConfig points at the CMS project holding the product catalog.
type SanityConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	ReadToken  string
}

type StripeConfig struct {
	SecretKey string
}

// FrontendConfig carries the public storefront URL used to build the
// success/cancel redirects. When empty, the URL is derived per request from
// forwarding headers.
type FrontendConfig struct {
	URL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8787"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Sanity: SanityConfig{
			ProjectID:  strings.TrimSpace(os.Getenv("SANITY_PROJECT_ID")),
			Dataset:    getEnv("SANITY_DATASET", "production"),
			APIVersion: getEnv("SANITY_API_VERSION", "2025-01-01"),
			ReadToken:  strings.TrimSpace(os.Getenv("SANITY_READ_TOKEN")),
		},
		Stripe: StripeConfig{
			SecretKey: strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		},
		Frontend: FrontendConfig{
			URL: strings.TrimRight(strings.TrimSpace(os.Getenv("FRONTEND_URL")), "/"),
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
