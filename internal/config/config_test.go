package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		APIBaseURL:           "http://127.0.0.1:8000/yalahntla9aw",
		VaultBackend:         VaultBackendFile,
		VaultPath:            ".yalah-session.json",
		RedisURL:             "localhost:6379",
		RequestsPollInterval: time.Minute,
		MessagesPollInterval: 30 * time.Second,
		StatusAddr:           ":8376",
		Env:                  "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid defaults", func(*Config) {}, false},
		{"missing base URL", func(c *Config) { c.APIBaseURL = "" }, true},
		{"base URL without scheme", func(c *Config) { c.APIBaseURL = "127.0.0.1:8000" }, true},
		{"https base URL", func(c *Config) { c.APIBaseURL = "https://clubs.example.com/api" }, false},
		{"file backend without path", func(c *Config) { c.VaultPath = "" }, true},
		{"redis backend", func(c *Config) { c.VaultBackend = VaultBackendRedis }, false},
		{"redis backend without URL", func(c *Config) {
			c.VaultBackend = VaultBackendRedis
			c.RedisURL = ""
		}, true},
		{"unknown backend", func(c *Config) { c.VaultBackend = "etcd" }, true},
		{"zero requests interval", func(c *Config) { c.RequestsPollInterval = 0 }, true},
		{"negative messages interval", func(c *Config) { c.MessagesPollInterval = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	os.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000/yalahntla9aw", cfg.APIBaseURL)
	assert.Equal(t, VaultBackendFile, cfg.VaultBackend)
	assert.Equal(t, time.Minute, cfg.RequestsPollInterval)
	assert.Equal(t, 30*time.Second, cfg.MessagesPollInterval)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer viper.Reset()
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("MESSAGES_POLL_INTERVAL")
	os.Setenv("APP_ENV", "development")
	os.Setenv("MESSAGES_POLL_INTERVAL", "10s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.MessagesPollInterval)
}
