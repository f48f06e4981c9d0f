// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pocketledger/backend/pkg/currency"
	"github.com/rs/zerolog/log"
)

// Data backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

type Config struct {
	// HTTP server
	APIURL           string
	Port             string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Storage
	DataBackend   string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string

	// Exchange rates, RatesURL empty means offline rates only
	RatesURL string
	RatesTTL time.Duration

	// Owners
	AuthSecret      string
	DefaultOwner    string
	DefaultCurrency string

	// Logging
	LogFormat string
	GinMode   string
}

// Load reads the given .env files, ".env" if none are given, and then the environment.
//
// Variables already set in the environment take precedence over .env files.
func Load(files ...string) *Config {
	if err := godotenv.Load(files...); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	return &Config{
		APIURL:           getEnv("API_URL", ""),
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigins: strings.Fields(getEnv("CORS_ALLOW_ORIGINS", "")),
		EnablePprof:      getEnv("ENABLE_PPROF", "false") == "true",

		DataBackend:   getEnv("DATA_BACKEND", BackendSQLite),
		SQLitePath:    getEnv("SQLITE_PATH", "data/gorm.db"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "pocketledger"),

		RatesURL: getEnv("RATES_URL", ""),
		RatesTTL: getEnvDuration("RATES_TTL", time.Hour),

		AuthSecret:      getEnv("AUTH_SECRET", ""),
		DefaultOwner:    getEnv("DEFAULT_OWNER", "default"),
		DefaultCurrency: currency.Normalize(getEnv("DEFAULT_CURRENCY", currency.Reference)),

		LogFormat: getEnv("LOG_FORMAT", ""),
		GinMode:   getEnv("GIN_MODE", "release"),
	}
}

// URL returns the parsed API URL.
func (c *Config) URL() (*url.URL, error) {
	return url.Parse(c.APIURL)
}

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var errors []string

	if c.APIURL == "" {
		errors = append(errors, "API_URL must be set")
	} else if u, err := c.URL(); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': must be an absolute URL", c.APIURL))
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLitePath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendMongo:
		if parsed, err := url.Parse(c.MongoURI); err != nil || (parsed.Scheme != "mongodb" && parsed.Scheme != "mongodb+srv") {
			errors = append(errors, fmt.Sprintf("invalid MongoDB URI '%s': scheme must be 'mongodb' or 'mongodb+srv'", c.MongoURI))
		}
		if c.MongoDatabase == "" {
			errors = append(errors, "MongoDB database name cannot be empty when using mongo backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [%s %s]", c.DataBackend, BackendSQLite, BackendMongo))
	}

	if c.RatesURL != "" {
		if parsed, err := url.Parse(c.RatesURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid rates URL '%s': scheme must be 'http' or 'https'", c.RatesURL))
		}
	}

	if c.RatesTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid rates TTL %v: must be at least 1 second", c.RatesTTL))
	}

	if c.AuthSecret == "" && c.DefaultOwner == "" {
		errors = append(errors, "DEFAULT_OWNER must be set when AUTH_SECRET is empty")
	}

	if !currency.Valid(c.DefaultCurrency) {
		errors = append(errors, fmt.Sprintf("invalid default currency '%s'", c.DefaultCurrency))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("invalid duration, using default")
	}
	return defaultValue
}
