// Package auth resolves Alpaca API credentials for request authentication.
package auth

import (
	"errors"
	"os"
)

// Header names for Alpaca trading API authentication.
const (
	HeaderKeyID     = "APCA-API-KEY-ID"
	HeaderSecretKey = "APCA-API-SECRET-KEY"
)

// Environment variables consulted when config leaves credentials unset.
const (
	EnvKeyID     = "APCA_API_KEY_ID"
	EnvSecretKey = "APCA_API_SECRET_KEY"
)

// ErrCredentialsMissing is returned when no key/secret pair could be
// resolved from config or environment. Nothing is fetched without one.
var ErrCredentialsMissing = errors.New("alpaca credentials missing")

// Credentials holds the Alpaca API key pair.
type Credentials struct {
	KeyID     string
	SecretKey string
}

// Resolve returns credentials from the given values, falling back to the
// APCA_* environment variables for any empty field.
func Resolve(keyID, secretKey string) (*Credentials, error) {
	if keyID == "" {
		keyID = os.Getenv(EnvKeyID)
	}
	if secretKey == "" {
		secretKey = os.Getenv(EnvSecretKey)
	}
	if keyID == "" || secretKey == "" {
		return nil, ErrCredentialsMissing
	}
	return &Credentials{KeyID: keyID, SecretKey: secretKey}, nil
}

// Headers returns the authentication headers for a trading API request.
func (c *Credentials) Headers() map[string]string {
	return map[string]string{
		HeaderKeyID:     c.KeyID,
		HeaderSecretKey: c.SecretKey,
	}
}
