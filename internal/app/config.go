package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheets_rw/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	SpreadsheetID   string
	CredentialsFile string
	TokenFile       string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables.
// SPREADSHEET_ID is optional here since it may be supplied on the command line; see Validate.
func LoadConfig() (*Config, error) {
	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = config.DefaultCredentialsFile
	}

	tokenFile := os.Getenv("GOOGLE_TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = config.DefaultTokenFile
	}

	if filepath.Clean(credentialsFile) == filepath.Clean(tokenFile) {
		return nil, fmt.Errorf("GOOGLE_TOKEN_FILE must not be the same file as GOOGLE_CREDENTIALS_FILE (%s)", credentialsFile)
	}

	return &Config{
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: credentialsFile,
		TokenFile:       tokenFile,
	}, nil
}

// Validate checks the settings needed to address a spreadsheet
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SpreadsheetID) == "" {
		return fmt.Errorf("SPREADSHEET_ID environment variable or --spreadsheet flag is required")
	}
	return nil
}
