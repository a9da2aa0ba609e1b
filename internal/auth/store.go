package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ErrTokenNotFound is returned by TokenStore.Get when nothing has been cached
var ErrTokenNotFound = errors.New("no cached token")

// TokenStore caches the OAuth token between runs.
// There is no locking: concurrent writers race and the last one wins.
type TokenStore interface {
	Get() (*oauth2.Token, error)
	Put(token *oauth2.Token) error
	Delete() error
}

// FileTokenStore keeps the token as JSON in a single file
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore creates a token store backed by path
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

func (s *FileTokenStore) Get() (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrTokenNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", s.Path, err)
	}

	return token, nil
}

// Put writes the token to a temporary file beside Path and renames it into place,
// so a failed write never leaves a truncated token behind.
func (s *FileTokenStore) Put(token *oauth2.Token) (err error) {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(s.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to cache oauth token: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	if err := f.Chmod(0600); err != nil {
		return fmt.Errorf("failed to cache oauth token: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to cache oauth token: %w", err)
	}
	if err := os.Rename(f.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to cache oauth token: %w", err)
	}

	log.Debug().Str("path", s.Path).Msg("Saved OAuth token")

	return nil
}

func (s *FileTokenStore) Delete() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps the token in memory
type MemoryTokenStore struct {
	token   *oauth2.Token
	Puts    int
	Deletes int
}

// NewMemoryTokenStore creates an in-memory store, optionally seeded with a token
func NewMemoryTokenStore(token *oauth2.Token) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Get() (*oauth2.Token, error) {
	if s.token == nil {
		return nil, ErrTokenNotFound
	}
	token := *s.token
	return &token, nil
}

func (s *MemoryTokenStore) Put(token *oauth2.Token) error {
	stored := *token
	s.token = &stored
	s.Puts++
	return nil
}

func (s *MemoryTokenStore) Delete() error {
	s.token = nil
	s.Deletes++
	return nil
}
