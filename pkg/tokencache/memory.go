package tokencache

import "sync"

// MemoryStore keeps tokens in process memory. It is mainly useful in
// tests and for callers that do not want credentials on disk.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens: make(map[string]Token),
	}
}

func (s *MemoryStore) Read(key string) (*Token, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[key]
	if !ok {
		return nil, false
	}
	return &token, true
}

func (s *MemoryStore) Write(key string, token *Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[key] = *token
	return nil
}
