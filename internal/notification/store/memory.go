package store

import (
	"context"
	"sort"
	"sync"

	"bahay/internal/notification"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// InMemory keeps notifications in memory for tests and local runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.NotificationID]*notification.Notification
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.NotificationID]*notification.Notification)}
}

func (s *InMemory) Create(_ context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *n
	s.items[n.ID] = &clone
	return nil
}

func (s *InMemory) ListByUser(_ context.Context, userID id.UserID) ([]*notification.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*notification.Notification
	for _, n := range s.items {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	// Newest first, matching the bell widget.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) CountUnread(_ context.Context, userID id.UserID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) MarkRead(_ context.Context, notifID id.NotificationID, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[notifID]
	if !ok || n.UserID != userID {
		return sentinel.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (s *InMemory) MarkAllRead(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}
