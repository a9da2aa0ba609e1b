package auth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"

	"sheets_rw/internal/config"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ConsentFunc obtains a fresh token by asking the user to authorise access
type ConsentFunc func(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)

// LocalServer runs the OAuth consent flow against a callback listener on the loopback interface
type LocalServer struct {
	Settings config.ConsentConfig

	// Open presents the authorisation URL to the user. Defaults to launching the system browser.
	Open func(url string) error
}

type callback struct {
	code string
	err  error
}

// Consent starts the callback listener, sends the user to Google's consent page and
// exchanges the returned authorisation code for a token. Blocks until the callback
// arrives or ctx is cancelled.
func (s LocalServer) Consent(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", s.Settings.ListenAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth callback listener: %w", err)
	}

	path := s.Settings.CallbackPath
	if path == "" {
		path = "/"
	}

	c := *conf
	c.RedirectURL = fmt.Sprintf("http://%s%s", listener.Addr().String(), path)

	state := uuid.NewString()
	callbacks := make(chan callback, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "Invalid state token", http.StatusBadRequest)
			return
		}

		var cb callback
		if reason := rq.FormValue("error"); reason != "" {
			cb.err = fmt.Errorf("authorisation denied: %s", reason)
			http.Error(w, "Authorisation failed - you may close this window", http.StatusForbidden)
		} else if code := rq.FormValue("code"); code == "" {
			http.Error(w, "Missing authorisation code", http.StatusBadRequest)
			return
		} else {
			cb.code = code
			fmt.Fprintln(w, "Authorisation complete - you may close this window")
		}

		select {
		case callbacks <- cb:
		default:
		}
	})

	srv := &http.Server{Handler: mux}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("OAuth callback listener failed")
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := c.AuthCodeURL(state, oauth2.AccessTypeOffline)

	log.Info().
		Str("url", authURL).
		Str("redirect", c.RedirectURL).
		Msg("Open the URL in a browser to authorise access to Google Sheets")

	if open := s.opener(); open != nil {
		if err := open(authURL); err != nil {
			log.Warn().Err(err).Msg("Could not open authorisation page in your browser - please open the URL manually")
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()

	case cb := <-callbacks:
		if cb.err != nil {
			return nil, cb.err
		}

		token, err := c.Exchange(ctx, cb.code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorisation code: %w", err)
		}

		return token, nil
	}
}

func (s LocalServer) opener() func(string) error {
	if s.Open != nil {
		return s.Open
	}
	if s.Settings.OpenBrowser {
		return openBrowser
	}
	return nil
}

func openBrowser(url string) error {
	var command *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		command = exec.Command("open", url)
	case "windows":
		command = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		command = exec.Command("xdg-open", url)
	}

	return command.Start()
}
