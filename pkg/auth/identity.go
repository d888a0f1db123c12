// Package auth obtains OAuth2 access tokens for a Google Cloud service
// account. It builds a time-bound RS256-signed assertion from the
// account's key material, exchanges it at the token endpoint for a
// short-lived bearer token, and caches the result on disk so repeated
// invocations do not re-authenticate.
package auth

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenURL is the Google OAuth2 token endpoint, used when the
// service account document does not carry a token_uri.
const DefaultTokenURL = "https://oauth2.googleapis.com/token"

// ServiceIdentity is a service account credential loaded from its JSON
// document. It is immutable after load; the private key is parsed
// eagerly so a bad credential fails at construction time rather than
// on first use.
type ServiceIdentity struct {
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
	TokenURI     string `json:"token_uri"`

	key *rsa.PrivateKey
}

// ParseServiceAccount parses a service account JSON document.
// It returns an error wrapping ErrInvalidCredential if the document or
// its key material cannot be parsed.
func ParseServiceAccount(data []byte) (*ServiceIdentity, error) {
	var identity ServiceIdentity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("%w: parsing document: %v", ErrInvalidCredential, err)
	}
	if identity.ClientEmail == "" {
		return nil, fmt.Errorf("%w: client_email is required", ErrInvalidCredential)
	}
	if identity.PrivateKey == "" {
		return nil, fmt.Errorf("%w: private_key is required", ErrInvalidCredential)
	}
	if identity.TokenURI == "" {
		identity.TokenURI = DefaultTokenURL
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(identity.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing private key: %v", ErrInvalidCredential, err)
	}
	identity.key = key

	return &identity, nil
}

// LoadServiceAccount reads and parses a service account JSON file.
func LoadServiceAccount(path string) (*ServiceIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading service account file '%s': %w", path, err)
	}
	identity, err := ParseServiceAccount(data)
	if err != nil {
		return nil, fmt.Errorf("parsing service account file '%s': %w", path, err)
	}
	return identity, nil
}
