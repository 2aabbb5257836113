package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the client
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Session SessionConfig `mapstructure:"session"`
	Log     LogConfig     `mapstructure:"log"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig holds settings for the outbound HTTP client
type APIConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// CacheConfig holds the query cache policy knobs
type CacheConfig struct {
	StaleAfterSeconds int `mapstructure:"stale_after_seconds"`
	EvictAfterSeconds int `mapstructure:"evict_after_seconds"`
	RetryCount        int `mapstructure:"retry_count"`
	RetryBackoffMs    int `mapstructure:"retry_backoff_ms"`
	PageSize          int `mapstructure:"page_size"`
}

// SessionConfig holds where the session cookie cache lives
type SessionConfig struct {
	File string `mapstructure:"file"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var config *Config

// Init initializes the configuration
func Init() {
	config = &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// Get returns the global configuration
func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

// Timeout returns the HTTP client timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StaleAfter returns the staleness window as a duration.
func (c CacheConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterSeconds) * time.Second
}

// EvictAfter returns the eviction window as a duration.
func (c CacheConfig) EvictAfter() time.Duration {
	return time.Duration(c.EvictAfterSeconds) * time.Second
}

// RetryBackoff returns the fixed retry backoff as a duration.
func (c CacheConfig) RetryBackoff() time.Duration {
	return time.Duration(c.RetryBackoffMs) * time.Millisecond
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "skillswap")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// API defaults
	viper.SetDefault("api.base_url", "http://localhost:8000/api")
	viper.SetDefault("api.timeout_seconds", 30)
	viper.SetDefault("api.requests_per_second", 10.0)
	viper.SetDefault("api.burst", 5)

	// Cache defaults
	viper.SetDefault("cache.stale_after_seconds", 60)
	viper.SetDefault("cache.evict_after_seconds", 300)
	viper.SetDefault("cache.retry_count", 2)
	viper.SetDefault("cache.retry_backoff_ms", 500)
	viper.SetDefault("cache.page_size", 6)

	// Session defaults
	viper.SetDefault("session.file", defaultSessionFile())

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("log.file_path", "")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skillswap-session.json"
	}
	return filepath.Join(home, ".skillswap", "session.json")
}
