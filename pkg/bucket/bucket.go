// Package bucket is a minimal client for the Google Cloud Storage
// JSON API: list, get, put, delete and metadata for objects in one
// bucket. Every request is authorized with a bearer token obtained
// from a TokenSource, typically an auth.Provider.
package bucket

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/afrantzis/ugcs/pkg/tokencache"
)

const (
	// DefaultStorageURL is the base URL for object and metadata requests.
	DefaultStorageURL = "https://storage.googleapis.com/storage/v1"

	// DefaultUploadURL is the base URL for media uploads.
	DefaultUploadURL = "https://storage.googleapis.com/upload/storage/v1"
)

// TokenSource supplies a currently-valid access token. It is consulted
// on every request, so a cached token is reused until it nears expiry
// and then transparently replaced.
type TokenSource interface {
	Token(ctx context.Context) (*tokencache.Token, error)
}

// Bucket performs object operations against a single bucket.
type Bucket struct {
	name       string
	tokens     TokenSource
	httpClient *http.Client
	storageURL string
	uploadURL  string
}

// Option configures a Bucket.
type Option func(*Bucket)

// WithHTTPClient replaces the HTTP client used for storage requests.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bucket) {
		b.httpClient = client
	}
}

// WithEndpoints overrides the storage and upload base URLs, e.g. to
// target a local emulator.
func WithEndpoints(storageURL, uploadURL string) Option {
	return func(b *Bucket) {
		b.storageURL = storageURL
		b.uploadURL = uploadURL
	}
}

// New creates a client for the named bucket.
func New(name string, tokens TokenSource, opts ...Option) *Bucket {
	b := &Bucket{
		name:       name,
		tokens:     tokens,
		httpClient: http.DefaultClient,
		storageURL: DefaultStorageURL,
		uploadURL:  DefaultUploadURL,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

func (b *Bucket) objectURL(object string) string {
	return fmt.Sprintf("%s/b/%s/o/%s", b.storageURL, url.PathEscape(b.name), url.PathEscape(object))
}

// List returns one page of objects whose names start with prefix. An
// empty prefix lists the whole bucket.
func (b *Bucket) List(ctx context.Context, prefix string) (*ObjectList, error) {
	listURL := fmt.Sprintf("%s/b/%s/o", b.storageURL, url.PathEscape(b.name))
	if prefix != "" {
		listURL += "?" + url.Values{"prefix": {prefix}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var result ObjectList
	if err := b.do(req, &result); err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	return &result, nil
}

// Get downloads an object's content.
func (b *Bucket) Get(ctx context.Context, object string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", b.objectURL(object)+"?alt=media", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	data, err := b.doRaw(req)
	if err != nil {
		return nil, fmt.Errorf("getting object '%s': %w", object, err)
	}
	return data, nil
}

// Metadata returns an object's metadata without its content.
func (b *Bucket) Metadata(ctx context.Context, object string) (*Object, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", b.objectURL(object), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var result Object
	if err := b.do(req, &result); err != nil {
		return nil, fmt.Errorf("getting metadata for object '%s': %w", object, err)
	}
	return &result, nil
}

// Put uploads data as the object's new content, replacing any previous
// generation. The whole body is buffered; streaming uploads are out of
// scope.
func (b *Bucket) Put(ctx context.Context, object string, data []byte, contentType string) (*Object, error) {
	uploadURL := fmt.Sprintf("%s/b/%s/o?%s", b.uploadURL, url.PathEscape(b.name), url.Values{
		"uploadType": {"media"},
		"name":       {object},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var result Object
	if err := b.do(req, &result); err != nil {
		return nil, fmt.Errorf("uploading object '%s': %w", object, err)
	}
	return &result, nil
}

// Delete removes an object.
func (b *Bucket) Delete(ctx context.Context, object string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", b.objectURL(object), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if err := b.do(req, nil); err != nil {
		return fmt.Errorf("deleting object '%s': %w", object, err)
	}
	return nil
}
