// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration for the server, storage, AI service, Sheets, OAuth and notifications

package config

import (
	"errors"
	"fmt"
	"os"

	"postsheet-api/pkg/utils/parse"
)

// Unset marks an optional integer override that was not provided
const Unset = -1

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains key-value store configuration
	Cache CacheConfig

	AI AIConfig

	Sheets SheetsConfig

	// Google holds the OAuth client used to mint Sheets tokens
	Google GoogleConfig

	Notify NotifyConfig

	Log LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// Environment selects the deployment tier (production, development, test)
	Environment string

	// RateLimitPerMinute is the per-client request rate; 0 disables limiting
	RateLimitPerMinute int

	RateLimitBurst int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig

	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int

	// KeyPrefix namespaces every key written by this service
	KeyPrefix string
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired entries are purged, in seconds
	CleanupInterval int
}

// SQLiteConfig holds the local database configuration
type SQLiteConfig struct {
	Path string
}

// AIConfig holds the summarization service configuration
type AIConfig struct {
	Endpoint string

	// TimeoutSeconds bounds each summarization request
	TimeoutSeconds int

	// LicensedLimit and AnonymousLimit override the active tier's ceilings
	LicensedLimit  int
	AnonymousLimit int
}

// SheetsConfig holds spreadsheet configuration
type SheetsConfig struct {
	// DefaultSheetID is used until a sheet id is stored in settings
	DefaultSheetID string

	Range    string
	Endpoint string
}

// GoogleConfig holds the OAuth refresh-token client
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// TokenURL overrides Google's token endpoint
	TokenURL string
}

// NotifyConfig holds notification delivery configuration
type NotifyConfig struct {
	// TopicURL is the ntfy topic; empty disables notifications
	TopicURL string

	TimeoutSeconds int
	Workers        int
	QueueSize      int
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string

	// File enables size-rotated logging to a file; empty logs to stdout
	File string
}

var environments = map[string]bool{"production": true, "development": true, "test": true}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnvOrDefault("PORT", "8000"),
			Environment:        getEnvOrDefault("ENVIRONMENT", "production"),
			RateLimitPerMinute: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
			RateLimitBurst:     getEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:   getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password:  getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:        getEnvAsIntOrDefault("REDIS_DB", 0),
				KeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "postsheet:"),
			},
			Memory: MemoryConfig{
				CleanupInterval: getEnvAsIntOrDefault("MEMORY_CACHE_CLEANUP", 600),
			},
			SQLite: SQLiteConfig{
				Path: getEnvOrDefault("SQLITE_PATH", "postsheet.db"),
			},
		},
		AI: AIConfig{
			Endpoint:       getEnvOrDefault("AI_ENDPOINT", ""),
			TimeoutSeconds: getEnvAsIntOrDefault("AI_TIMEOUT_SECONDS", 12),
			LicensedLimit:  getEnvAsIntOrDefault("QUOTA_LICENSED_LIMIT", Unset),
			AnonymousLimit: getEnvAsIntOrDefault("QUOTA_ANONYMOUS_LIMIT", Unset),
		},
		Sheets: SheetsConfig{
			DefaultSheetID: getEnvOrDefault("SHEET_ID", ""),
			Range:          getEnvOrDefault("SHEET_RANGE", "Posts!A:P"),
			Endpoint:       getEnvOrDefault("SHEETS_ENDPOINT", "https://sheets.googleapis.com/"),
		},
		Google: GoogleConfig{
			ClientID:     getEnvOrDefault("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnvOrDefault("GOOGLE_CLIENT_SECRET", ""),
			RefreshToken: getEnvOrDefault("GOOGLE_REFRESH_TOKEN", ""),
			TokenURL:     getEnvOrDefault("GOOGLE_TOKEN_URL", ""),
		},
		Notify: NotifyConfig{
			TopicURL:       getEnvOrDefault("NTFY_TOPIC_URL", ""),
			TimeoutSeconds: getEnvAsIntOrDefault("NTFY_TIMEOUT_SECONDS", 10),
			Workers:        getEnvAsIntOrDefault("NOTIFY_WORKERS", 2),
			QueueSize:      getEnvAsIntOrDefault("NOTIFY_QUEUE", 64),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	return parse.IntOr(os.Getenv(key), defaultValue)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if !environments[c.Server.Environment] {
		return fmt.Errorf("environment must be production, development or test, got %q", c.Server.Environment)
	}

	if c.Server.RateLimitPerMinute < 0 {
		return errors.New("rate limit cannot be negative")
	}

	switch c.Cache.Type {
	case "memory":
	case "redis":
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case "sqlite":
		if c.Cache.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.AI.TimeoutSeconds < 1 {
		return errors.New("AI timeout must be at least 1 second")
	}

	if c.Sheets.Range == "" {
		return errors.New("sheet range cannot be empty")
	}

	if c.Notify.Workers < 1 {
		return errors.New("notify workers must be at least 1")
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}

// HasGoogleCredentials reports whether a refresh-token client is configured
func (c *Config) HasGoogleCredentials() bool {
	return c.Google.ClientID != "" && c.Google.RefreshToken != ""
}
