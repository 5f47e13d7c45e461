package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the matching engine.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API and monitoring server.
// - ProviderType: The geocoding provider to use (google, opencage, nominatim).
// - APIKey: The API key for the geocoding provider (required for Google and OpenCage).
// - RateLimit: Outbound geocoding requests per second.
// - CacheSize: Maximum number of entries in the geocode LRU cache.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string         // Env is the current environment: local, development, production.
	Port         int            // Port is the HTTP API server port.
	ProviderType string         // ProviderType specifies which geocoding provider to use.
	APIKey       string         // The API key for accessing the geocoding provider.
	RateLimit    int            // Outbound geocoding requests per second.
	CacheSize    int            // Maximum geocode cache entries before LRU eviction.
	Database     PostgresConfig // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to
// a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment (optionally seeded
// from a .env file) and returns a Config struct. It panics on malformed
// values since the service cannot start without a sane configuration.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MERIDIAN")
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", 8080)
	v.SetDefault("provider_type", "opencage")
	v.SetDefault("rate_limit", 1)
	v.SetDefault("cache_size", 1000)

	port := v.GetInt("port")
	if port <= 0 {
		panic("failed to parse port from configuration, must be a positive integer")
	}

	rateLimit := v.GetInt("rate_limit")
	if rateLimit <= 0 {
		panic("failed to parse rate limit from configuration, must be a positive integer")
	}

	cacheSize := v.GetInt("cache_size")
	if cacheSize <= 0 {
		panic("failed to parse cache size from configuration, must be a positive integer")
	}

	return &Config{
		Env:          v.GetString("env"),
		Port:         port,
		ProviderType: v.GetString("provider_type"),
		APIKey:       v.GetString("provider_key"),
		RateLimit:    rateLimit,
		CacheSize:    cacheSize,
		// DB_* variables are shared with the admin stack and carry no prefix.
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}
