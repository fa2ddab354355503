package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database    DatabaseConfig
	API         APIConfig
	Worker      WorkerConfig
	ActivityAPI ActivityAPIConfig
	Pagination  PaginationConfig
	Auth        AuthConfig
	Logging     LoggingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// APIConfig holds API server settings
type APIConfig struct {
	Port string
	Host string
}

// WorkerConfig holds worker settings
type WorkerConfig struct {
	PollInterval time.Duration
}

// ActivityAPIConfig holds Activity API client settings. The URL is optional;
// the activity-stats worker fails its jobs with a clear error when unset.
type ActivityAPIConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// PaginationConfig holds sales-view pagination defaults
type PaginationConfig struct {
	DefaultPageSize int
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	Enabled      bool
	SharedSecret string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5433"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "sales_view"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		API: APIConfig{
			Port: getEnv("API_PORT", "8080"),
			Host: getEnv("API_HOST", "0.0.0.0"),
		},
		Worker: WorkerConfig{
			PollInterval: parseDuration(getEnv("WORKER_POLL_INTERVAL", "5s"), 5*time.Second),
		},
		ActivityAPI: ActivityAPIConfig{
			URL:     getEnv("ACTIVITY_API_URL", ""),
			Token:   getEnv("ACTIVITY_API_TOKEN", ""),
			Timeout: parseDuration(getEnv("ACTIVITY_API_TIMEOUT", "30s"), 30*time.Second),
		},
		Pagination: PaginationConfig{
			DefaultPageSize: parseInt(getEnv("DEFAULT_PAGE_SIZE", "20"), 20),
		},
		Auth: AuthConfig{
			Enabled:      parseBool(getEnv("ENABLE_AUTH", "false")),
			SharedSecret: getEnv("SHARED_SECRET", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration fields are set
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.SharedSecret == "" {
		return fmt.Errorf("SHARED_SECRET is required when ENABLE_AUTH is true")
	}
	if c.Pagination.DefaultPageSize < 1 {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be positive")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(value string, defaultValue int) int {
	var result int
	_, err := fmt.Sscanf(value, "%d", &result)
	if err != nil {
		return defaultValue
	}
	return result
}

func parseBool(value string) bool {
	return value == "true" || value == "1" || value == "yes"
}
