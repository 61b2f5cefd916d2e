package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shengfai/socialite/internal/provider"
)

// StateStore holds the pending login states. A state is bound to the
// provider it was issued for and can be consumed once.
type StateStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{
		cache: cache.New(ttl, ttl*2),
	}
}

func (s *StateStore) New(p provider.OAuth2Provider) string {
	state := uuid.NewString()
	s.cache.SetDefault(state, p)
	return state
}

// LoadAndDelete consumes state and reports whether it was issued for p.
func (s *StateStore) LoadAndDelete(p provider.OAuth2Provider, state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(state)
	if !ok {
		return false
	}
	s.cache.Delete(state)
	return v.(provider.OAuth2Provider) == p
}

func (s *StateStore) Len() int {
	return s.cache.ItemCount()
}
