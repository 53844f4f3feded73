package store

import (
	"context"
	"sync"

	"bahay/internal/auth"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// InMemory keeps accounts in memory for tests and local runs.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.UserID]*auth.User
	byEmail map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.UserID]*auth.User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[u.Email]; exists {
		return sentinel.ErrConflict
	}
	clone := *u
	s.byID[u.ID] = &clone
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *s.byID[userID]
	return &clone, nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *u
	return &clone, nil
}
