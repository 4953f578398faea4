package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	LocalStore LocalStoreConfig
	Log        LogConfig
	Snapshot   SnapshotConfig
	CORS       CORSConfig
	Display    DisplayConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// LocalStoreConfig holds the location of the on-disk key-value store used
// for transactions of the unauthenticated local user. An empty Path keeps
// those transactions in the database as well.
type LocalStoreConfig struct {
	Path string
	Key  string // base64 fernet key; empty stores values unencrypted
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// SnapshotConfig holds the cron schedule for recording portfolio snapshots.
// An empty Schedule disables the job.
type SnapshotConfig struct {
	Schedule string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// DisplayConfig holds settings used when printing amounts
type DisplayConfig struct {
	Currency string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/investment_tracker.db"),
		},
		LocalStore: LocalStoreConfig{
			Path: getEnv("LOCAL_STORE_PATH", "./data/local"),
			Key:  os.Getenv("LOCAL_STORE_KEY"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Snapshot: SnapshotConfig{
			Schedule: getEnv("SNAPSHOT_SCHEDULE", "0 22 * * *"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Display: DisplayConfig{
			Currency: strings.ToUpper(getEnv("DISPLAY_CURRENCY", "USD")),
		},
	}

	if len(config.Display.Currency) != 3 {
		return nil, fmt.Errorf("invalid DISPLAY_CURRENCY %q: expected a 3-letter code", config.Display.Currency)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
