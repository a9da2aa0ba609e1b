package app

import (
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoadConfig(t *testing.T) {
	// Save original environment
	originalSpreadsheetID := os.Getenv("SPREADSHEET_ID")
	originalCredentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	originalTokenFile := os.Getenv("GOOGLE_TOKEN_FILE")

	defer func() {
		setOrUnset("SPREADSHEET_ID", originalSpreadsheetID)
		setOrUnset("GOOGLE_CREDENTIALS_FILE", originalCredentialsFile)
		setOrUnset("GOOGLE_TOKEN_FILE", originalTokenFile)
	}()

	t.Run("ValidConfiguration", func(t *testing.T) {
		os.Setenv("SPREADSHEET_ID", "test_spreadsheet_id")
		os.Setenv("GOOGLE_CREDENTIALS_FILE", "test_credentials.json")
		os.Setenv("GOOGLE_TOKEN_FILE", "test_token.json")

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.SpreadsheetID != "test_spreadsheet_id" {
			t.Errorf("Expected SpreadsheetID to be 'test_spreadsheet_id', got '%s'", config.SpreadsheetID)
		}

		if config.CredentialsFile != "test_credentials.json" {
			t.Errorf("Expected CredentialsFile to be 'test_credentials.json', got '%s'", config.CredentialsFile)
		}

		if config.TokenFile != "test_token.json" {
			t.Errorf("Expected TokenFile to be 'test_token.json', got '%s'", config.TokenFile)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("Expected valid configuration, got %v", err)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		os.Setenv("SPREADSHEET_ID", "test_spreadsheet_id")
		os.Unsetenv("GOOGLE_CREDENTIALS_FILE")
		os.Unsetenv("GOOGLE_TOKEN_FILE")

		config, err := LoadConfig()

		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if config.CredentialsFile != "credentials.json" {
			t.Errorf("Expected CredentialsFile to default to 'credentials.json', got '%s'", config.CredentialsFile)
		}

		if config.TokenFile != "token.json" {
			t.Errorf("Expected TokenFile to default to 'token.json', got '%s'", config.TokenFile)
		}
	})

	t.Run("MissingSpreadsheetID", func(t *testing.T) {
		os.Unsetenv("SPREADSHEET_ID")
		os.Unsetenv("GOOGLE_CREDENTIALS_FILE")
		os.Unsetenv("GOOGLE_TOKEN_FILE")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("Expected no error from LoadConfig, got %v", err)
		}

		err = config.Validate()
		if err == nil {
			t.Fatal("Expected error for missing SPREADSHEET_ID, got nil")
		}

		if !strings.Contains(err.Error(), "SPREADSHEET_ID") {
			t.Errorf("Expected error message to contain 'SPREADSHEET_ID', got '%s'", err.Error())
		}
	})

	t.Run("TokenFileClobbersCredentials", func(t *testing.T) {
		os.Setenv("GOOGLE_CREDENTIALS_FILE", "secrets/client.json")
		os.Setenv("GOOGLE_TOKEN_FILE", "secrets/./client.json")

		_, err := LoadConfig()

		if err == nil {
			t.Fatal("Expected error when token file and credentials file coincide, got nil")
		}
	})
}

func TestSetupEnvironment(t *testing.T) {
	// Save original environment
	originalENV := os.Getenv("ENV")
	originalLOGLEVEL := os.Getenv("LOGLEVEL")
	originalLevel := zerolog.GlobalLevel()

	defer func() {
		setOrUnset("ENV", originalENV)
		setOrUnset("LOGLEVEL", originalLOGLEVEL)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	testCases := []struct {
		name          string
		env           string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"ProductionDebug", "production", "debug", zerolog.DebugLevel},
		{"ProductionInfo", "production", "info", zerolog.InfoLevel},
		{"ProductionWarn", "production", "warn", zerolog.WarnLevel},
		{"ProductionWarning", "production", "warning", zerolog.WarnLevel},
		{"ProductionError", "production", "error", zerolog.ErrorLevel},
		{"ProductionFatal", "production", "fatal", zerolog.FatalLevel},
		{"ProductionPanic", "production", "panic", zerolog.PanicLevel},
		{"ProductionDisabled", "production", "disabled", zerolog.Disabled},
		{"ProductionDefault", "production", "", zerolog.WarnLevel},
		{"ProductionUnknown", "production", "unknown", zerolog.InfoLevel},
		{"DevelopmentDebug", "development", "debug", zerolog.DebugLevel},
		{"DevelopmentDefault", "development", "", zerolog.InfoLevel},
		{"DevelopmentUnknown", "", "unknown", zerolog.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setOrUnset("ENV", tc.env)
			setOrUnset("LOGLEVEL", tc.logLevel)

			SetupEnvironment()

			if zerolog.GlobalLevel() != tc.expectedLevel {
				t.Errorf("Expected log level %v, got %v", tc.expectedLevel, zerolog.GlobalLevel())
			}
		})
	}
}

// Helper function to set environment variable or unset if value is empty
func setOrUnset(key, value string) {
	if value == "" {
		os.Unsetenv(key)
	} else {
		os.Setenv(key, value)
	}
}
