package session

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the console's secrets in the OS keychain.
const KeyringService = "leadconsole"

// Keychain stores the session cookie value under one keychain account.
type Keychain struct {
	Account string
}

func (k Keychain) Get() (string, error) {
	if strings.TrimSpace(k.Account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	tok, err := keyring.Get(KeyringService, k.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

func (k Keychain) Set(token string) error {
	if strings.TrimSpace(k.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("session token is empty")
	}
	return keyring.Set(KeyringService, k.Account, token)
}

func (k Keychain) Delete() error {
	if strings.TrimSpace(k.Account) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, k.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
