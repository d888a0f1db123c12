// Package tokencache persists OAuth2 access tokens on disk so that
// repeated invocations (and concurrently running processes) can reuse
// a token instead of re-authenticating. The cache is advisory: any
// entry that is missing, unreadable or stale is simply a miss.
package tokencache

import "time"

// Token is a bearer token together with the instant it stops being valid.
type Token struct {
	// AccessToken is the opaque token string presented to the API.
	AccessToken string `json:"access_token"`

	// TokenType is the Authorization scheme, usually "Bearer".
	TokenType string `json:"token_type"`

	// ExpiresAt indicates when this token becomes invalid.
	ExpiresAt time.Time `json:"expires_at"`

	// Fingerprint identifies the identity/audience/scope combination
	// this token was issued for.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Usable reports whether the token can still be used at the given
// instant. The margin is subtracted from the stated expiry so a token
// never expires mid-flight due to network latency.
func (t *Token) Usable(now time.Time, margin time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-margin))
}

// Store is the narrow persistence surface the token provider depends on.
// Implementations must make Write atomic with respect to concurrent
// readers and must report unreadable entries as a miss, not an error.
type Store interface {
	// Read returns the cached token for key, or false if there is none.
	Read(key string) (*Token, bool)

	// Write persists the token for key, replacing any previous entry.
	Write(key string, token *Token) error
}
