// Package config loads the application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port        string
	HTTPTimeout time.Duration

	// Backend API
	APIBaseURL string

	// Session token storage
	TokenDir string

	// Local store (calorie log, settings, reflections)
	LocalDBPath string

	// AMQP change feed
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Snapshot export
	ExportBackend         string
	GoogleSpreadsheetID   string
	GoogleSheetBase       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
	GoogleOAuthClientFile string
	GoogleOAuthClientJSON string
	GoogleOAuthTokenFile  string
	GoogleOAuthTokenJSON  string

	// Shutdown
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win over file entries.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 15*time.Second),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),

		TokenDir:    getEnv("TOKEN_DIR", defaultTokenDir()),
		LocalDBPath: getEnv("LOCAL_DB_PATH", "./data/focusflow.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "focusflow"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "record_changes"),

		ExportBackend:         getEnv("EXPORT_BACKEND", "memory"),
		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetBase:       getEnv("GOOGLE_SHEET_BASE", "Snapshots"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleOAuthClientFile: getEnv("GOOGLE_OAUTH_CLIENT_FILE", ""),
		GoogleOAuthClientJSON: getEnv("GOOGLE_OAUTH_CLIENT_JSON", ""),
		GoogleOAuthTokenFile:  getEnv("GOOGLE_OAUTH_TOKEN_FILE", ""),
		GoogleOAuthTokenJSON:  getEnv("GOOGLE_OAUTH_TOKEN_JSON", ""),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the configuration and returns one combined error listing
// every problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.APIBaseURL == "" {
		errs = append(errs, "API base URL cannot be empty")
	} else if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.LocalDBPath == "" {
		errs = append(errs, "local database path cannot be empty")
	} else if dir := filepath.Dir(c.LocalDBPath); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				errs = append(errs, fmt.Sprintf("cannot create local database directory '%s': %v", dir, err))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.ExportBackend {
	case "memory":
	case "google":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "Google spreadsheet ID is required for the google export backend")
		}
		hasServiceAccount := c.GoogleCredentialsFile != "" || c.GoogleCredentialsJSON != ""
		hasOAuthClient := c.GoogleOAuthClientFile != "" || c.GoogleOAuthClientJSON != ""
		hasOAuthToken := c.GoogleOAuthTokenFile != "" || c.GoogleOAuthTokenJSON != ""
		if !hasServiceAccount && !hasOAuthClient {
			errs = append(errs, "either service account credentials or an OAuth client must be provided for the google export backend")
		}
		if hasOAuthClient && !hasOAuthToken {
			errs = append(errs, "OAuth client configured without a token, run oauth-init first")
		}
		for _, f := range []string{c.GoogleCredentialsFile, c.GoogleOAuthClientFile, c.GoogleOAuthTokenFile} {
			if f == "" {
				continue
			}
			if _, err := os.Stat(f); os.IsNotExist(err) {
				errs = append(errs, fmt.Sprintf("Google credentials file does not exist: %s", f))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid export backend '%s': must be 'memory' or 'google'", c.ExportBackend))
	}

	if c.HTTPTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	}
	if c.ShutdownTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid shutdown timeout %v: must be at least 1 second", c.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func defaultTokenDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".focusflow"
	}
	return filepath.Join(home, ".focusflow")
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
	}
	return defaultValue
}
