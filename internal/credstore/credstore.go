// Package credstore persists the Search Console refresh token in the
// operating system keychain.
//
// Platform requirements:
//   - macOS: Keychain via the Security framework (works out of the box)
//   - Linux: Requires libsecret (GNOME), kwallet (KDE), or pass (CLI)
//   - Windows: Uses Windows Credential Manager (works out of the box)
//
// The store is a convenience for local development. Hosted deployments
// without a keychain supply the token through the environment instead;
// nothing here is consulted when resolving launch credentials.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// ServiceName is the default keyring service identifier.
	// Can be overridden with TMMCP_KEYRING_SERVICE for test isolation.
	ServiceName = "tmmcp"
	// AccountName is the keyring account holding the refresh token.
	AccountName = "gsc-refresh-token"
)

// ErrNotFound is returned when no refresh token has been stored.
var ErrNotFound = errors.New("no stored refresh token")

func serviceName() string {
	if name := os.Getenv("TMMCP_KEYRING_SERVICE"); name != "" {
		return name
	}
	return ServiceName
}

// Save stores the refresh token, replacing any previous one.
func Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("refusing to store an empty refresh token")
	}
	if err := keyring.Set(serviceName(), AccountName, token); err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

// Load returns the stored refresh token, or ErrNotFound.
func Load() (string, error) {
	token, err := keyring.Get(serviceName(), AccountName)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keychain get: %w", err)
	}
	return token, nil
}

// Clear removes the stored refresh token. Returns ErrNotFound when
// there was nothing to remove.
func Clear() error {
	err := keyring.Delete(serviceName(), AccountName)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("keychain delete: %w", err)
	}
	return nil
}
