package session

import (
	"context"
	"sync"

	"sidifa/portal/internal/api"
)

// MemoryStore 进程内存储，进程退出即丢失
type MemoryStore struct {
	mu            sync.RWMutex
	authenticated bool
	profile       *api.Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SetAuthStatus(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = authenticated
	return nil
}

func (s *MemoryStore) AuthStatus(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated, nil
}

func (s *MemoryStore) SetUserProfile(ctx context.Context, profile api.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
	return nil
}

func (s *MemoryStore) UserProfile(ctx context.Context) (*api.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, nil
	}
	p := *s.profile
	return &p, nil
}

func (s *MemoryStore) ClearAllAuthData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.profile = nil
	return nil
}
