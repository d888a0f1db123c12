package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signedAssertion builds and signs the JWT presented to the token
// endpoint: an RS256 assertion claiming the identity's issuer, the
// requested scope and the endpoint audience, valid from now until
// now+lifetime. A fresh assertion is created for every exchange and
// discarded afterwards; only the resulting access token is ever cached.
func signedAssertion(identity *ServiceIdentity, scope, audience string, now time.Time, lifetime time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"iss":   identity.ClientEmail,
		"scope": scope,
		"aud":   audience,
		"iat":   now.Unix(),
		"exp":   now.Add(lifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if identity.PrivateKeyID != "" {
		token.Header["kid"] = identity.PrivateKeyID
	}

	signed, err := token.SignedString(identity.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return signed, nil
}
