package auth

import "fmt"

var (
	// ErrInvalidCredential indicates a malformed or unparsable service
	// account document. Not retryable.
	ErrInvalidCredential = fmt.Errorf("invalid service account credential")

	// ErrSigningFailed indicates the assertion could not be signed.
	// Signing failures are structural, not transient; not retryable.
	ErrSigningFailed = fmt.Errorf("signing assertion failed")

	// ErrMalformedResponse indicates the token endpoint answered with
	// a body that violates the expected contract.
	ErrMalformedResponse = fmt.Errorf("malformed token endpoint response")
)

// AuthServerError is returned when the authorization server rejects
// the token exchange. The status code and raw body are preserved so
// the caller can diagnose the rejection (clock skew, revoked key,
// wrong scope, ...).
type AuthServerError struct {
	StatusCode int
	Body       string
}

func (e *AuthServerError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, e.Body)
}
