// Package config loads the optional ugcs configuration file. The file
// carries the policy constants that are deliberately not hard-coded:
// scope, token endpoint, assertion lifetime, cache safety margin and
// storage endpoints. Every field has a sensible default, so running
// without a config file is the common case.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/afrantzis/ugcs/pkg/auth"
	"github.com/afrantzis/ugcs/pkg/bucket"
)

type Config struct {
	Auth    AuthConfig    `yaml:"auth"`
	Storage StorageConfig `yaml:"storage"`
}

// AuthConfig holds the token-acquisition policy.
type AuthConfig struct {
	// Scope is the OAuth2 scope requested in the assertion.
	Scope string `yaml:"scope"`

	// AssertionLifetime is the validity window claimed by the signed
	// assertion.
	AssertionLifetime time.Duration `yaml:"assertion_lifetime"`

	// SafetyMargin is subtracted from a cached token's expiry when
	// deciding whether it is still usable.
	SafetyMargin time.Duration `yaml:"safety_margin"`

	// CacheDir overrides the token cache directory. Empty means the
	// platform cache directory convention.
	CacheDir string `yaml:"cache_dir"`
}

func (c *AuthConfig) Validate() error {
	if c.Scope == "" {
		return fmt.Errorf("scope is required")
	}
	if c.AssertionLifetime <= 0 {
		return fmt.Errorf("assertion_lifetime must be positive")
	}
	if c.SafetyMargin < 0 {
		return fmt.Errorf("safety_margin must not be negative")
	}
	if c.SafetyMargin >= c.AssertionLifetime {
		return fmt.Errorf("safety_margin must be smaller than assertion_lifetime")
	}
	return nil
}

// StorageConfig holds the storage API endpoints, overridable e.g. to
// target an emulator.
type StorageConfig struct {
	APIURL    string `yaml:"api_url"`
	UploadURL string `yaml:"upload_url"`
}

func (c *StorageConfig) Validate() error {
	for name, value := range map[string]string{
		"api_url":    c.APIURL,
		"upload_url": c.UploadURL,
	} {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s is not a valid URL: '%s'", name, value)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("validating auth config: %w", err)
	}
	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("validating storage config: %w", err)
	}
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Auth: AuthConfig{
			Scope:             auth.DefaultScope,
			AssertionLifetime: auth.DefaultAssertionLifetime,
			SafetyMargin:      auth.DefaultSafetyMargin,
		},
		Storage: StorageConfig{
			APIURL:    bucket.DefaultStorageURL,
			UploadURL: bucket.DefaultUploadURL,
		},
	}
}

// Load reads a config file and merges it over the defaults. Fields
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file '%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	return cfg, nil
}
