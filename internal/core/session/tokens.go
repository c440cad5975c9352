package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prooflab/redline/internal/api"
)

// tokensFile is the fixed name of the persisted token pair under the data dir.
const tokensFile = "tokens.json"

// TokenStore persists the backend token pair on disk and serves it to the
// api client's auth transport. It is safe for concurrent use.
type TokenStore struct {
	path string

	mu     sync.RWMutex
	tokens *api.TokenPair
}

// NewTokenStore creates a store rooted at the given data directory. Existing
// tokens are loaded eagerly; a missing or unreadable file just means no
// stored session.
func NewTokenStore(dataDir string) *TokenStore {
	s := &TokenStore{path: filepath.Join(dataDir, tokensFile)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var pair api.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil || pair.AccessToken == "" {
		return s
	}
	s.tokens = &pair
	return s
}

// Provider exposes the store as an api.TokenProvider.
func (s *TokenStore) Provider() api.TokenProvider {
	return func() (api.TokenPair, bool) {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if s.tokens == nil {
			return api.TokenPair{}, false
		}
		return *s.tokens, true
	}
}

// Get returns the stored pair, if any.
func (s *TokenStore) Get() (api.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return api.TokenPair{}, false
	}
	return *s.tokens, true
}

// Set persists the pair to disk and makes it visible to the provider.
func (s *TokenStore) Set(pair api.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}

	s.mu.Lock()
	s.tokens = &pair
	s.mu.Unlock()
	return nil
}

// Clear wipes the stored pair from memory and disk. Removing a file that is
// already gone is not an error.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	s.tokens = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove tokens: %w", err)
	}
	return nil
}
