package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingEnv is returned (joined per variable) when a required environment variable is empty.
var ErrMissingEnv = errors.New("missing required environment variable")

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	InitRetries        int
	InitDelay          time.Duration
}

// Validate reports every required connection variable that was left empty.
func (c DatabaseConfig) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"DB_HOST", c.Host},
		{"DB_PORT", c.Port},
		{"DB_NAME", c.Name},
		{"DB_USER", c.User},
		{"DB_PASSWORD", c.Password},
	}

	var errs []error
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingEnv, r.env))
		}
	}
	return errors.Join(errs...)
}

// CORSConfig holds the cross-origin policy applied to every route.
type CORSConfig struct {
	AllowOrigins string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Timezone string
	LogLevel string
	Database DatabaseConfig
	CORS     CORSConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// The DB_* connection values have no defaults; call Database.Validate before use.
func Load() *AppConfig {
	return &AppConfig{
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "UTC"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", ""),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			InitRetries:        getEnvInt("DB_INIT_RETRIES", 5),
			InitDelay:          time.Duration(getEnvInt("DB_INIT_DELAY_SEC", 2)) * time.Second,
		},
		CORS: CORSConfig{
			AllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
