package tokencache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/xid"
)

// FileStore persists one token per key as a JSON file under a cache
// directory, by convention <user cache dir>/ugcs. Writes go to a
// temporary file first and are moved into place with an atomic rename,
// so a concurrent reader never observes a half-written entry. No lock
// is taken around read-fetch-write sequences: racing processes may
// each fetch a token, and the last write simply wins.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// DefaultCacheDir returns the ugcs cache directory, honouring the
// platform cache-directory convention (XDG_CACHE_HOME on Linux,
// falling back to ~/.cache).
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving user cache directory: %w", err)
	}
	return filepath.Join(base, "ugcs"), nil
}

// NewFileStore returns a store rooted at dir. If dir is empty, the
// default cache directory is used. The directory is created lazily on
// the first write.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file a given key is stored at.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+".token")
}

// Read loads the entry for key. A missing or unparsable file is a
// cache miss; the cache is advisory, so corruption is never surfaced
// as an error.
func (s *FileStore) Read(key string) (*Token, bool) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		return nil, false
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, false
	}
	return &token, true
}

// Write persists the token for key using write-then-rename so the
// entry file always contains valid data.
func (s *FileStore) Write(key string, token *Token) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("creating cache directory '%s': %w", s.dir, err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding cached token: %w", err)
	}

	path := s.Path(key)
	tmp := path + ".tmp." + xid.New().String()
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing cache entry '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing cache entry '%s': %w", path, err)
	}
	return nil
}
