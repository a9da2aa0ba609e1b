package config

import (
	"strings"
	"testing"
)

func TestDefaultConsentConfig(t *testing.T) {
	if DefaultConsentConfig.ListenAddress != "127.0.0.1:0" {
		t.Errorf("Expected loopback listener on an ephemeral port, got %s", DefaultConsentConfig.ListenAddress)
	}

	if !strings.HasPrefix(DefaultConsentConfig.CallbackPath, "/") {
		t.Errorf("Expected callback path to be absolute, got %s", DefaultConsentConfig.CallbackPath)
	}

	if !DefaultConsentConfig.OpenBrowser {
		t.Error("Expected browser to be opened by default")
	}
}

func TestSheetsConstants(t *testing.T) {
	if SpreadsheetsScope != "https://www.googleapis.com/auth/spreadsheets" {
		t.Errorf("Unexpected scope %s", SpreadsheetsScope)
	}

	if ValueInputRaw != "RAW" {
		t.Errorf("Expected RAW value input option, got %s", ValueInputRaw)
	}

	if BlankCell != "0" {
		t.Errorf("Expected blank cell sentinel '0', got %q", BlankCell)
	}

	if DefaultCredentialsFile == DefaultTokenFile {
		t.Error("Credentials and token files must not share a default path")
	}
}
