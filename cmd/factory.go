package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/afrantzis/ugcs/internal/config"
	"github.com/afrantzis/ugcs/pkg/auth"
	"github.com/afrantzis/ugcs/pkg/bucket"
	"github.com/afrantzis/ugcs/pkg/tokencache"
)

// Factory wires up the objects the subcommands need: configuration,
// the service identity, its token provider and bucket clients.
type Factory struct {
	ServiceAccountFile string
	ConfigPath         string
}

var f = &Factory{}

// Config loads the configuration file if one was given, or returns
// the defaults.
func (f *Factory) Config() (*config.Config, error) {
	if f.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(f.ConfigPath)
}

// Identity loads the service account credential.
func (f *Factory) Identity() (*auth.ServiceIdentity, error) {
	path := f.ServiceAccountFile // prio 1: command-line flag
	if path == "" {
		path = viper.GetString(ServiceAccountFileKey) // prio 2: env
	}
	if path == "" {
		return nil, fmt.Errorf("service account file not configured (use --service-account-file or set UGCS_SERVICE_ACCOUNT_FILE)")
	}
	return auth.LoadServiceAccount(path)
}

// TokenProvider returns an access token provider for the configured
// identity, backed by the on-disk token cache.
func (f *Factory) TokenProvider() (*auth.Provider, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	identity, err := f.Identity()
	if err != nil {
		return nil, err
	}

	store, err := tokencache.NewFileStore(cfg.Auth.CacheDir)
	if err != nil {
		return nil, err
	}

	return auth.NewProvider(identity,
		auth.WithScope(cfg.Auth.Scope),
		auth.WithAssertionLifetime(cfg.Auth.AssertionLifetime),
		auth.WithSafetyMargin(cfg.Auth.SafetyMargin),
		auth.WithStore(store),
	)
}

// Bucket returns a client for the named bucket, authorized through
// the token provider.
func (f *Factory) Bucket(name string) (*bucket.Bucket, error) {
	cfg, err := f.Config()
	if err != nil {
		return nil, err
	}

	provider, err := f.TokenProvider()
	if err != nil {
		return nil, err
	}

	return bucket.New(name, provider,
		bucket.WithEndpoints(cfg.Storage.APIURL, cfg.Storage.UploadURL),
	), nil
}
