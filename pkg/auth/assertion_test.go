package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignedAssertion(t *testing.T) {
	identity := testIdentity(t)
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	signed, err := signedAssertion(identity, DefaultScope, DefaultTokenURL, now, time.Hour)
	if err != nil {
		t.Fatalf("signedAssertion() failed: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return &identity.key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("parsing signed assertion: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("assertion signature did not verify")
	}

	if kid := parsed.Header["kid"]; kid != testKeyID {
		t.Errorf("kid header = %v, want %q", kid, testKeyID)
	}

	claims := parsed.Claims.(jwt.MapClaims)
	wantClaims := map[string]any{
		"iss":   testEmail,
		"scope": DefaultScope,
		"aud":   DefaultTokenURL,
		"iat":   float64(now.Unix()),
		"exp":   float64(now.Add(time.Hour).Unix()),
	}
	for name, want := range wantClaims {
		if got := claims[name]; got != want {
			t.Errorf("claim %q = %v, want %v", name, got, want)
		}
	}
}

func TestSignedAssertionOmitsEmptyKeyID(t *testing.T) {
	identity := testIdentity(t)
	identity.PrivateKeyID = ""

	signed, err := signedAssertion(identity, DefaultScope, DefaultTokenURL, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("signedAssertion() failed: %v", err)
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(signed, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parsing assertion: %v", err)
	}
	if _, ok := parsed.Header["kid"]; ok {
		t.Error("kid header present for identity without a key ID")
	}
}
