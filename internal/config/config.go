// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Vault backend names accepted in VAULT_BACKEND.
const (
	VaultBackendFile  = "file"
	VaultBackendRedis = "redis"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	APIBaseURL           string        `mapstructure:"API_BASE_URL"`
	VaultBackend         string        `mapstructure:"VAULT_BACKEND"`
	VaultPath            string        `mapstructure:"VAULT_PATH"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	RequestsPollInterval time.Duration `mapstructure:"REQUESTS_POLL_INTERVAL"`
	MessagesPollInterval time.Duration `mapstructure:"MESSAGES_POLL_INTERVAL"`
	StatusAddr           string        `mapstructure:"STATUS_ADDR"`
	FeatureFlags         string        `mapstructure:"FEATURE_FLAGS"`
	Env                  string        `mapstructure:"APP_ENV"`
	Username             string        `mapstructure:"YALAH_USERNAME"`
	Password             string        `mapstructure:"YALAH_PASSWORD"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; environment variables and defaults are
	// enough to run.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	viper.SetDefault("API_BASE_URL", "http://127.0.0.1:8000/yalahntla9aw")
	viper.SetDefault("VAULT_BACKEND", VaultBackendFile)
	viper.SetDefault("VAULT_PATH", ".yalah-session.json")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	// The SPA refreshed the request badge every 60s and messages every 30s.
	viper.SetDefault("REQUESTS_POLL_INTERVAL", "60s")
	viper.SetDefault("MESSAGES_POLL_INTERVAL", "30s")
	viper.SetDefault("STATUS_ADDR", ":8376")
	viper.SetDefault("FEATURE_FLAGS", "")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("YALAH_USERNAME", "")
	viper.SetDefault("YALAH_PASSWORD", "")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and sane.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("API_BASE_URL is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must be an http(s) URL, got %q", c.APIBaseURL)
	}

	switch c.VaultBackend {
	case VaultBackendFile:
		if c.VaultPath == "" {
			return errors.New("VAULT_PATH is required when VAULT_BACKEND is 'file'")
		}
	case VaultBackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when VAULT_BACKEND is 'redis'")
		}
	default:
		return fmt.Errorf("VAULT_BACKEND must be 'file' or 'redis', got %q", c.VaultBackend)
	}

	if c.RequestsPollInterval <= 0 {
		return errors.New("REQUESTS_POLL_INTERVAL must be positive")
	}
	if c.MessagesPollInterval <= 0 {
		return errors.New("MESSAGES_POLL_INTERVAL must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if strings.HasPrefix(c.APIBaseURL, "http://") {
			log.Println("WARNING: API_BASE_URL uses plain http in production. Bearer tokens will travel unencrypted.")
		}
		if c.Password != "" {
			log.Println("WARNING: YALAH_PASSWORD is set in the environment in production. Prefer a restored session vault.")
		}
	}

	return nil
}
