package tokencache

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Fingerprint derives the cache key for a service identity. Identities
// with the same issuer, audience and scope share one cache entry; any
// difference in the triple yields a different key. The digest is
// base64url-encoded so it is safe to use as a file name.
func Fingerprint(issuer, audience, scope string) string {
	hash := sha256.Sum256([]byte(strings.Join([]string{issuer, audience, scope}, "\n")))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}
