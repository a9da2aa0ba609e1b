package auth

import (
	"context"
	"errors"
	"fmt"

	"sheets_rw/internal/app"
	"sheets_rw/internal/config"
	"sheets_rw/internal/sheets"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// Factory builds authenticated Google Sheets clients from a credentials file
type Factory struct {
	CredentialsFile string
	Scopes          []string
	Store           TokenStore
	Consent         ConsentFunc

	// Options are appended to the client options used to build the Sheets client
	Options []option.ClientOption
}

// NewFactory creates a Factory that caches OAuth tokens in store and asks for consent
// through a loopback callback listener.
func NewFactory(credentialsFile string, store TokenStore) *Factory {
	return &Factory{
		CredentialsFile: credentialsFile,
		Scopes:          []string{config.SpreadsheetsScope},
		Store:           store,
		Consent:         LocalServer{Settings: config.DefaultConsentConfig}.Consent,
	}
}

// NewService returns a Sheets client authenticated with the credentials file.
// Errors are *app.Error: no_credentials, invalid_credentials or sheets_api.
func (f *Factory) NewService(ctx context.Context) (*sheets.Client, error) {
	ts, err := f.TokenSource(ctx)
	if err != nil {
		return nil, err
	}

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, f.Options...)
	client, err := sheets.NewClient(ctx, opts...)
	if err != nil {
		return nil, app.NewError(app.KindSheetsAPI, sheets.Reason(err), err)
	}

	return client, nil
}

// TokenSource loads the credentials and returns a token source for the configured scopes,
// running the interactive consent flow if the credentials are an OAuth client without a usable cached token.
func (f *Factory) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	creds, err := LoadCredentials(f.CredentialsFile)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("credentials", f.CredentialsFile).
		Str("type", creds.Type.String()).
		Msg("Loaded Google credentials")

	switch creds.Type {
	case CredentialsInteractive:
		conf, err := google.ConfigFromJSON(creds.JSON, f.Scopes...)
		if err != nil {
			return nil, app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to parse OAuth client: %w", err))
		}

		token, err := f.userToken(ctx, conf)
		if err != nil {
			return nil, app.NewError(app.KindSheetsAPI, "", err)
		}

		return conf.TokenSource(ctx, token), nil

	case CredentialsServiceAccount:
		conf, err := google.JWTConfigFromJSON(creds.JSON, f.Scopes...)
		if err != nil {
			return nil, app.NewError(app.KindSheetsAPI, "", fmt.Errorf("failed to parse service account key: %w", err))
		}

		return conf.TokenSource(ctx), nil

	default:
		return nil, app.NewError(app.KindInvalidCredentials, f.CredentialsFile, nil)
	}
}

// userToken returns the cached token if it is still valid. Otherwise it refreshes an expired
// token, falling back to a full consent when there is no refresh token or the token endpoint
// rejects the refresh.
// Any newly acquired token is written back to the store.
func (f *Factory) userToken(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	token, err := f.Store.Get()
	if errors.Is(err, ErrTokenNotFound) {
		token = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cached token: %w", err)
	}

	if token != nil && token.Valid() {
		return token, nil
	}

	switch {
	case token == nil:
		log.Info().Msg("No cached token, requesting authorisation")
		token, err = f.consent(ctx, conf)

	case token.RefreshToken != "":
		refreshed, refreshErr := conf.TokenSource(ctx, token).Token()
		if refreshErr == nil {
			token = refreshed
			break
		}

		// Only a rejection from the token endpoint invalidates the grant; a network
		// failure leaves the cached token in place for the next attempt.
		var retrieveErr *oauth2.RetrieveError
		if !errors.As(refreshErr, &retrieveErr) {
			return nil, fmt.Errorf("failed to refresh token: %w", refreshErr)
		}

		log.Warn().Err(refreshErr).Msg("Token refresh rejected, discarding cached token and requesting authorisation")
		if err := f.Store.Delete(); err != nil {
			return nil, err
		}
		token, err = f.consent(ctx, conf)

	default:
		log.Info().Msg("Cached token has expired and cannot be refreshed, requesting authorisation")
		token, err = f.consent(ctx, conf)
	}

	if err != nil {
		return nil, err
	}

	if err := f.Store.Put(token); err != nil {
		return nil, err
	}

	return token, nil
}

func (f *Factory) consent(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	if f.Consent == nil {
		return nil, fmt.Errorf("authorisation required but no consent flow is configured")
	}
	return f.Consent(ctx, conf)
}
