package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// Values come from the environment with simple defaults for local development.
type Config struct {
	HTTPAddr   string // Address the API server listens on, e.g. ":8080"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Logical table names. Each maps to one key-partitioned MySQL table.
	SongsTable   string
	CatalogTable string
	UsersTable   string

	JWTSecret         string
	JWTExpires        time.Duration // Access token lifetime
	JWTRefreshExpires time.Duration // Refresh token lifetime

	LogLevel string
	LogPath  string // Optional log file, rotated; empty means stdout only
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvDuration gets an environment variable as a duration or returns a default value.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // No hardcoded default for the password
		DBName:     getEnv("DB_NAME", "hymnal"),

		SongsTable:   getEnv("SONGS_TABLE", "songs"),
		CatalogTable: getEnv("UNIQUE_SONGS_TABLE", "unique_songs"),
		UsersTable:   getEnv("USERS_TABLE", "users"),

		JWTSecret:         getEnv("JWT_SECRET", "change-me-in-prod"),
		JWTExpires:        getEnvDuration("JWT_EXPIRES_IN", 15*time.Minute),
		JWTRefreshExpires: getEnvDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),
	}
}
