package store

import (
	"context"
	"sort"
	"sync"

	"bahay/internal/room"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// InMemory keeps rooms and occupants in memory for tests and local runs.
type InMemory struct {
	mu        sync.RWMutex
	rooms     map[id.RoomID]*room.Room
	occupants map[id.OccupantID]*room.Occupant
}

func NewInMemory() *InMemory {
	return &InMemory{
		rooms:     make(map[id.RoomID]*room.Room),
		occupants: make(map[id.OccupantID]*room.Occupant),
	}
}

func (s *InMemory) CreateRoom(_ context.Context, r *room.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *r
	s.rooms[r.ID] = &clone
	return nil
}

func (s *InMemory) FindRoom(_ context.Context, roomID id.RoomID) (*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *InMemory) ListRoomsByHouse(_ context.Context, houseID id.HouseID) ([]*room.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*room.Room
	for _, r := range s.rooms {
		if r.BoardingHouseID == houseID {
			clone := *r
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteRoom removes the room and cascades to its occupants, mirroring the
// foreign-key cascade in the SQL store.
func (s *InMemory) DeleteRoom(_ context.Context, roomID id.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.rooms, roomID)
	for occupantID, o := range s.occupants {
		if o.RoomID == roomID {
			delete(s.occupants, occupantID)
		}
	}
	return nil
}

func (s *InMemory) CreateOccupant(_ context.Context, o *room.Occupant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *o
	s.occupants[o.ID] = &clone
	return nil
}

func (s *InMemory) FindOccupant(_ context.Context, occupantID id.OccupantID) (*room.Occupant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.occupants[occupantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (s *InMemory) ListOccupantsByRoom(_ context.Context, roomID id.RoomID) ([]*room.Occupant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*room.Occupant
	for _, o := range s.occupants {
		if o.RoomID == roomID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemory) CountOccupantsByRoom(_ context.Context, roomID id.RoomID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, o := range s.occupants {
		if o.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (s *InMemory) UpdateOccupant(_ context.Context, o *room.Occupant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.occupants[o.ID]; !ok {
		return sentinel.ErrNotFound
	}
	clone := *o
	s.occupants[o.ID] = &clone
	return nil
}

func (s *InMemory) DeleteOccupant(_ context.Context, occupantID id.OccupantID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.occupants[occupantID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.occupants, occupantID)
	return nil
}
