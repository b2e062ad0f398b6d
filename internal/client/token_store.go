package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-quote-keeper/models"
)

const (
	tokenFileMode = 0o600
	tokenDirMode  = 0o700
)

// TokenStore keeps the token pair in a JSON file.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns an empty pair when the file does not exist.
func (s *TokenStore) Load() (models.TokenPair, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.TokenPair{}, nil
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("read token file: %w", err)
	}

	var pair models.TokenPair
	if err = json.Unmarshal(data, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("decode token file %s: %w", s.path, err)
	}
	return pair, nil
}

// Save writes pair, or removes the file when pair carries no tokens.
func (s *TokenStore) Save(pair models.TokenPair) error {
	if pair.AccessToken == "" && pair.RefreshToken == "" {
		return s.Clear()
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode token pair: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(s.path), tokenDirMode); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, data, tokenFileMode); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
