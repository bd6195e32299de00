package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"

	"BirthdayKeeper/internal/cli/repo"
)

const (
	service  = "BirthdayKeeper"
	tokenKey = "auth_token"
)

// AuthKeyringStore keeps the auth token in the OS keyring instead of a
// plain file. Login context still lives in the fallback store passed
// in, since the keyring only holds secrets.
type AuthKeyringStore struct {
	// Fallback is used when the keyring backend is unavailable
	// (headless session, missing dbus).
	Fallback repo.TokenStore
}

var _ repo.TokenStore = (*AuthKeyringStore)(nil)

func (s AuthKeyringStore) Save(token string) error {
	if err := keyring.Set(service, tokenKey, token); err != nil {
		if s.Fallback != nil {
			return s.Fallback.Save(token)
		}
		return err
	}
	return nil
}

func (s AuthKeyringStore) Load() (string, error) {
	token, err := keyring.Get(service, tokenKey)
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", errors.New("no stored token")
	}
	if s.Fallback != nil {
		return s.Fallback.Load()
	}
	return "", err
}

func (s AuthKeyringStore) Clear() error {
	err := keyring.Delete(service, tokenKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		if s.Fallback != nil {
			return s.Fallback.Clear()
		}
		return err
	}
	if s.Fallback != nil {
		// Clear the fallback too in case an earlier save landed there.
		_ = s.Fallback.Clear()
	}
	return nil
}
