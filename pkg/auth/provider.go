package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afrantzis/ugcs/pkg/tokencache"
)

const (
	// DefaultScope grants read/write access to Cloud Storage objects.
	DefaultScope = "https://www.googleapis.com/auth/devstorage.read_write"

	// DefaultAssertionLifetime is how long a signed assertion claims to
	// be valid for.
	DefaultAssertionLifetime = time.Hour

	// DefaultSafetyMargin is subtracted from a cached token's expiry
	// when deciding whether it is still usable.
	DefaultSafetyMargin = time.Minute
)

// Provider hands out currently-valid access tokens for one service
// identity. Token consults the cache first and only signs and
// exchanges a fresh assertion on a miss or an expired entry. Freshness
// is re-evaluated from the clock on every call, so a Provider can be
// reused for the lifetime of the process.
//
// Token may be called concurrently. Concurrent cache misses each
// perform their own exchange and each write a valid token; the
// duplicate fetch is accepted in exchange for not locking around the
// fetch-then-write sequence.
type Provider struct {
	identity  *ServiceIdentity
	scope     string
	lifetime  time.Duration
	margin    time.Duration
	store     tokencache.Store
	exchanger Exchanger
	now       func() time.Time
	logger    zerolog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithScope overrides the OAuth2 scope requested in the assertion.
func WithScope(scope string) Option {
	return func(p *Provider) {
		p.scope = scope
	}
}

// WithAssertionLifetime overrides the assertion validity window.
func WithAssertionLifetime(lifetime time.Duration) Option {
	return func(p *Provider) {
		p.lifetime = lifetime
	}
}

// WithSafetyMargin overrides the margin subtracted from a token's
// expiry when deciding whether to reuse it.
func WithSafetyMargin(margin time.Duration) Option {
	return func(p *Provider) {
		p.margin = margin
	}
}

// WithStore replaces the token cache, e.g. with a
// tokencache.MemoryStore to keep credentials off disk.
func WithStore(store tokencache.Store) Option {
	return func(p *Provider) {
		p.store = store
	}
}

// WithExchanger replaces the token exchanger.
func WithExchanger(exchanger Exchanger) Option {
	return func(p *Provider) {
		p.exchanger = exchanger
	}
}

// WithClock replaces the time source. Tests use this to step through
// a token's validity window deterministically.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// WithLogger replaces the logger used for non-fatal cache diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider for the given identity. Without
// options it targets the account's token endpoint with the storage
// read/write scope and caches tokens in the default file store.
func NewProvider(identity *ServiceIdentity, opts ...Option) (*Provider, error) {
	p := &Provider{
		identity:  identity,
		scope:     DefaultScope,
		lifetime:  DefaultAssertionLifetime,
		margin:    DefaultSafetyMargin,
		exchanger: &HTTPExchanger{},
		now:       time.Now,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.store == nil {
		store, err := tokencache.NewFileStore("")
		if err != nil {
			return nil, err
		}
		p.store = store
	}

	return p, nil
}

// Fingerprint returns the cache key tokens for this provider are
// stored under.
func (p *Provider) Fingerprint() string {
	return tokencache.Fingerprint(p.identity.ClientEmail, p.identity.TokenURI, p.scope)
}

// Token returns an access token that is valid now. A cached token is
// returned as long as it has more than the safety margin left;
// otherwise a fresh assertion is signed and exchanged, and the new
// token is written through to the cache before being returned.
//
// A failed exchange is returned to the caller as-is: the provider
// never retries and never serves a token past its usable window. A
// failed cache write is logged and swallowed, since the token itself
// was obtained; caching is a best-effort optimization.
func (p *Provider) Token(ctx context.Context) (*tokencache.Token, error) {
	key := p.Fingerprint()
	now := p.now()

	if cached, ok := p.store.Read(key); ok && cached.Usable(now, p.margin) {
		return cached, nil
	}

	assertion, err := signedAssertion(p.identity, p.scope, p.identity.TokenURI, now, p.lifetime)
	if err != nil {
		return nil, err
	}

	resp, err := p.exchanger.Exchange(ctx, p.identity.TokenURI, assertion)
	if err != nil {
		return nil, err
	}

	token := &tokencache.Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresAt:   now.Add(time.Duration(resp.ExpiresIn) * time.Second),
		Fingerprint: key,
	}

	if err := p.store.Write(key, token); err != nil {
		p.logger.Warn().Err(err).Msg("failed to cache access token, continuing without cache")
	}

	return token, nil
}
