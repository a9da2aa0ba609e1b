package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sheets_rw/internal/app"
)

// CredentialsType is decided once, when the credentials file is loaded
type CredentialsType int

const (
	CredentialsInvalid CredentialsType = iota
	// CredentialsInteractive is an OAuth client ("installed" or "web") that needs user consent
	CredentialsInteractive
	// CredentialsServiceAccount is a service account key; no consent, no token cache
	CredentialsServiceAccount
)

func (t CredentialsType) String() string {
	switch t {
	case CredentialsInteractive:
		return "interactive"
	case CredentialsServiceAccount:
		return "service_account"
	default:
		return "invalid"
	}
}

// Credentials is the parsed contents of a Google credentials file
type Credentials struct {
	Type CredentialsType
	Path string
	JSON []byte
}

// LoadCredentials reads and classifies the credentials file at path.
// A missing file yields a no_credentials error; an unrecognised shape yields invalid_credentials.
func LoadCredentials(path string) (*Credentials, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, app.NewError(app.KindNoCredentials, path, err)
		}
		return nil, app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to stat credentials file: %w", err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to read credentials file: %w", err))
	}

	credentialsType, err := classify(data)
	if err != nil {
		return nil, app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to parse credentials file %s: %w", path, err))
	}

	if credentialsType == CredentialsInvalid {
		return nil, app.NewError(app.KindInvalidCredentials, path, nil)
	}

	return &Credentials{
		Type: credentialsType,
		Path: path,
		JSON: data,
	}, nil
}

func classify(data []byte) (CredentialsType, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return CredentialsInvalid, err
	}

	if _, ok := fields["installed"]; ok {
		return CredentialsInteractive, nil
	}
	if _, ok := fields["web"]; ok {
		return CredentialsInteractive, nil
	}

	var kind string
	if raw, ok := fields["type"]; ok && json.Unmarshal(raw, &kind) == nil && kind == "service_account" {
		return CredentialsServiceAccount, nil
	}

	return CredentialsInvalid, nil
}
