package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"
)

const (
	testEmail = "ugcs-test@project.iam.gserviceaccount.com"
	testKeyID = "key-1"
)

func testKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return key, string(pemBytes)
}

func testServiceAccountJSON(t *testing.T, tokenURI string) []byte {
	t.Helper()

	_, keyPEM := testKey(t)
	data, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"client_email":   testEmail,
		"private_key":    keyPEM,
		"private_key_id": testKeyID,
		"token_uri":      tokenURI,
	})
	if err != nil {
		t.Fatalf("marshaling service account fixture: %v", err)
	}
	return data
}

func testIdentity(t *testing.T) *ServiceIdentity {
	t.Helper()

	identity, err := ParseServiceAccount(testServiceAccountJSON(t, DefaultTokenURL))
	if err != nil {
		t.Fatalf("parsing service account fixture: %v", err)
	}
	return identity
}
