package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"bahay/internal/house/models"
	"bahay/internal/permit"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// InMemory keeps boarding houses in memory for tests and local runs.
type InMemory struct {
	mu    sync.RWMutex
	items map[id.HouseID]*models.BoardingHouse
}

func NewInMemory() *InMemory {
	return &InMemory{items: make(map[id.HouseID]*models.BoardingHouse)}
}

func (s *InMemory) Create(_ context.Context, h *models.BoardingHouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.PermitNumber == h.PermitNumber {
			return sentinel.ErrConflict
		}
	}
	clone := *h
	s.items[h.ID] = &clone
	return nil
}

func (s *InMemory) FindByID(_ context.Context, houseID id.HouseID) (*models.BoardingHouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.items[houseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *h
	return &clone, nil
}

func (s *InMemory) List(_ context.Context, filter models.ListFilter) ([]*models.BoardingHouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.BoardingHouse
	for _, h := range s.items {
		if !matches(h, filter) {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) ListByOwner(_ context.Context, ownerID id.UserID) ([]*models.BoardingHouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.BoardingHouse
	for _, h := range s.items {
		if h.OwnerID == ownerID {
			clone := *h
			out = append(out, &clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *InMemory) Update(_ context.Context, h *models.BoardingHouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[h.ID]; !ok {
		return sentinel.ErrNotFound
	}
	for otherID, existing := range s.items {
		if otherID != h.ID && existing.PermitNumber == h.PermitNumber {
			return sentinel.ErrConflict
		}
	}
	clone := *h
	s.items[h.ID] = &clone
	return nil
}

func (s *InMemory) ApplyDecision(_ context.Context, houseID id.HouseID, status permit.Status, active bool, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.items[houseID]
	if !ok {
		return sentinel.ErrNotFound
	}
	h.PermitStatus = status
	h.IsActive = active
	h.UpdatedAt = updatedAt
	return nil
}

// Exists satisfies the room module's house lookup.
func (s *InMemory) Exists(_ context.Context, houseID id.HouseID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[houseID]
	return ok, nil
}

func (s *InMemory) Delete(_ context.Context, houseID id.HouseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[houseID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, houseID)
	return nil
}

func matches(h *models.BoardingHouse, filter models.ListFilter) bool {
	if filter.Barangay != "" && !strings.EqualFold(h.Barangay, filter.Barangay) {
		return false
	}
	if filter.Status != "" && h.PermitStatus != filter.Status {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(h.Name), needle) &&
			!strings.Contains(strings.ToLower(h.Address), needle) {
			return false
		}
	}
	return true
}

func sortNewestFirst(houses []*models.BoardingHouse) {
	sort.Slice(houses, func(i, j int) bool {
		return houses[i].CreatedAt.After(houses[j].CreatedAt)
	})
}
