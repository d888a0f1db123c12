package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/afrantzis/ugcs/pkg/tokencache"
)

// stubExchanger counts exchanges and hands out sequentially numbered
// tokens, or a fixed error.
type stubExchanger struct {
	mu        sync.Mutex
	calls     int
	expiresIn int64
	err       error
}

func (s *stubExchanger) Exchange(ctx context.Context, tokenURL, assertion string) (*TokenResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	s.calls++
	return &TokenResponse{
		AccessToken: fmt.Sprintf("tok-%d", s.calls),
		TokenType:   "Bearer",
		ExpiresIn:   s.expiresIn,
	}, nil
}

func (s *stubExchanger) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type failingStore struct{}

func (failingStore) Read(key string) (*tokencache.Token, bool) { return nil, false }
func (failingStore) Write(key string, token *tokencache.Token) error {
	return fmt.Errorf("disk full")
}

func newTestProvider(t *testing.T, exchanger Exchanger, store tokencache.Store, now func() time.Time) *Provider {
	t.Helper()

	provider, err := NewProvider(testIdentity(t),
		WithExchanger(exchanger),
		WithStore(store),
		WithClock(now),
	)
	if err != nil {
		t.Fatalf("NewProvider() failed: %v", err)
	}
	return provider
}

func TestProviderTokenLifecycle(t *testing.T) {
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := start
	exchanger := &stubExchanger{expiresIn: 3600}
	provider := newTestProvider(t, exchanger, tokencache.NewMemoryStore(), func() time.Time { return now })

	// t=0: cold cache, one exchange
	token, err := provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Errorf("AccessToken = %q, want tok-1", token.AccessToken)
	}
	if exchanger.callCount() != 1 {
		t.Errorf("exchange calls = %d, want 1", exchanger.callCount())
	}

	// t=3500: still inside the margin-adjusted window, served from cache
	now = start.Add(3500 * time.Second)
	token, err = provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Errorf("AccessToken = %q, want the cached tok-1", token.AccessToken)
	}
	if exchanger.callCount() != 1 {
		t.Errorf("exchange calls = %d, want no new exchange within the window", exchanger.callCount())
	}

	// t=3601: past expiry, exactly one new exchange with a later expiry
	firstExpiry := token.ExpiresAt
	now = start.Add(3601 * time.Second)
	token, err = provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed: %v", err)
	}
	if token.AccessToken != "tok-2" {
		t.Errorf("AccessToken = %q, want a fresh tok-2", token.AccessToken)
	}
	if exchanger.callCount() != 2 {
		t.Errorf("exchange calls = %d, want 2", exchanger.callCount())
	}
	if !token.ExpiresAt.After(firstExpiry) {
		t.Errorf("new expiry %v is not after the old expiry %v", token.ExpiresAt, firstExpiry)
	}
}

func TestProviderRefetchesInsideSafetyMargin(t *testing.T) {
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	now := start
	exchanger := &stubExchanger{expiresIn: 3600}
	provider := newTestProvider(t, exchanger, tokencache.NewMemoryStore(), func() time.Time { return now })

	if _, err := provider.Token(context.Background()); err != nil {
		t.Fatal(err)
	}

	// 3570s in: token has 30s left, less than the 60s margin
	now = start.Add(3570 * time.Second)
	token, err := provider.Token(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if token.AccessToken != "tok-2" {
		t.Errorf("AccessToken = %q, want a refetched token inside the margin", token.AccessToken)
	}
}

func TestProviderRepairsCorruptCache(t *testing.T) {
	store, err := tokencache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	exchanger := &stubExchanger{expiresIn: 3600}
	provider := newTestProvider(t, exchanger, store, time.Now)

	key := provider.Fingerprint()
	if err := store.Write(key, &tokencache.Token{AccessToken: "x", ExpiresAt: time.Now().Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(key), []byte("garbage bytes"), 0600); err != nil {
		t.Fatal(err)
	}

	token, err := provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed on corrupt cache: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Errorf("AccessToken = %q, want a freshly fetched token", token.AccessToken)
	}

	// the corrupt file must have been replaced with a valid entry
	repaired, ok := store.Read(key)
	if !ok {
		t.Fatal("cache entry was not repaired")
	}
	if repaired.AccessToken != token.AccessToken {
		t.Errorf("repaired entry holds %q, want %q", repaired.AccessToken, token.AccessToken)
	}
}

func TestProviderConcurrentColdCache(t *testing.T) {
	store, err := tokencache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	exchanger := &stubExchanger{expiresIn: 3600}
	provider := newTestProvider(t, exchanger, store, time.Now)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if token.AccessToken == "" {
				errs <- fmt.Errorf("empty token")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Token() failed: %v", err)
	}

	// the cache must hold a syntactically valid entry afterwards
	token, ok := store.Read(provider.Fingerprint())
	if !ok {
		t.Fatal("no valid cache entry after concurrent fetches")
	}
	if !token.Usable(time.Now(), time.Minute) {
		t.Errorf("cached token %+v is not usable", token)
	}
}

func TestProviderPropagatesExchangeError(t *testing.T) {
	store := tokencache.NewMemoryStore()
	exchanger := &stubExchanger{err: &AuthServerError{StatusCode: 400, Body: `{"error":"invalid_grant"}`}}
	provider := newTestProvider(t, exchanger, store, time.Now)

	_, err := provider.Token(context.Background())

	var authErr *AuthServerError
	if !errors.As(err, &authErr) {
		t.Fatalf("Token() error = %v, want *AuthServerError", err)
	}
	if authErr.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", authErr.StatusCode)
	}

	if _, ok := store.Read(provider.Fingerprint()); ok {
		t.Error("cache was written despite a failed exchange")
	}
}

func TestProviderSurvivesCacheWriteFailure(t *testing.T) {
	exchanger := &stubExchanger{expiresIn: 3600}
	provider := newTestProvider(t, exchanger, failingStore{}, time.Now)

	token, err := provider.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() failed on cache write error: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Errorf("AccessToken = %q, want the fetched token despite the failed write", token.AccessToken)
	}
}

func TestProviderFingerprintDependsOnScope(t *testing.T) {
	identity := testIdentity(t)

	a, err := NewProvider(identity, WithStore(tokencache.NewMemoryStore()))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewProvider(identity, WithStore(tokencache.NewMemoryStore()),
		WithScope("https://www.googleapis.com/auth/devstorage.read_only"))
	if err != nil {
		t.Fatal(err)
	}

	if a.Fingerprint() == b.Fingerprint() {
		t.Error("providers with different scopes share a cache key")
	}
}
