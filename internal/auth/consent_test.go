package auth

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"sheets_rw/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func consentConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: tokenURL,
		},
		RedirectURL: "http://localhost",
		Scopes:      []string{config.SpreadsheetsScope},
	}
}

// browser simulates the user approving (or denying) access and Google redirecting back
func browser(t *testing.T, params func(state string) url.Values) func(string) error {
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		if err != nil {
			return err
		}

		query := u.Query()
		assert.Equal(t, "offline", query.Get("access_type"))
		assert.Equal(t, config.SpreadsheetsScope, query.Get("scope"))

		redirect := query.Get("redirect_uri")
		callback := redirect + "?" + params(query.Get("state")).Encode()

		go func() {
			rsp, err := http.Get(callback)
			if err == nil {
				rsp.Body.Close()
			}
		}()

		return nil
	}
}

func TestLocalServerConsent(t *testing.T) {
	server := tokenServer(t)

	s := LocalServer{
		Settings: config.ConsentConfig{ListenAddress: "127.0.0.1:0", CallbackPath: "/"},
		Open: browser(t, func(state string) url.Values {
			return url.Values{"state": {state}, "code": {"the-code"}, "scope": {config.SpreadsheetsScope}}
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := s.Consent(ctx, consentConfig(server.URL))

	require.NoError(t, err)
	assert.Equal(t, "consented", token.AccessToken)
	assert.Equal(t, "good", token.RefreshToken)
}

func TestLocalServerConsentDenied(t *testing.T) {
	server := tokenServer(t)

	s := LocalServer{
		Settings: config.ConsentConfig{ListenAddress: "127.0.0.1:0", CallbackPath: "/oauth2callback"},
		Open: browser(t, func(state string) url.Values {
			return url.Values{"state": {state}, "error": {"access_denied"}}
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := s.Consent(ctx, consentConfig(server.URL))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")
}

func TestLocalServerConsentIgnoresForgedState(t *testing.T) {
	server := tokenServer(t)

	s := LocalServer{
		Settings: config.ConsentConfig{ListenAddress: "127.0.0.1:0", CallbackPath: "/"},
		Open: browser(t, func(string) url.Values {
			return url.Values{"state": {"forged"}, "code": {"the-code"}}
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := s.Consent(ctx, consentConfig(server.URL))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocalServerBadListenAddress(t *testing.T) {
	s := LocalServer{Settings: config.ConsentConfig{ListenAddress: "not-an-address"}}

	_, err := s.Consent(context.Background(), consentConfig("http://127.0.0.1:0/token"))

	assert.Error(t, err)
}
