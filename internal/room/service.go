package room

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/sentinel"
	"bahay/pkg/requestcontext"
)

// Store persists rooms and occupants.
type Store interface {
	CreateRoom(ctx context.Context, r *Room) error
	FindRoom(ctx context.Context, roomID id.RoomID) (*Room, error)
	ListRoomsByHouse(ctx context.Context, houseID id.HouseID) ([]*Room, error)
	DeleteRoom(ctx context.Context, roomID id.RoomID) error

	CreateOccupant(ctx context.Context, o *Occupant) error
	FindOccupant(ctx context.Context, occupantID id.OccupantID) (*Occupant, error)
	ListOccupantsByRoom(ctx context.Context, roomID id.RoomID) ([]*Occupant, error)
	CountOccupantsByRoom(ctx context.Context, roomID id.RoomID) (int, error)
	UpdateOccupant(ctx context.Context, o *Occupant) error
	DeleteOccupant(ctx context.Context, occupantID id.OccupantID) error
}

// HouseReader answers whether a boarding house exists, without pulling in the
// whole house service.
type HouseReader interface {
	Exists(ctx context.Context, houseID id.HouseID) (bool, error)
}

// Service manages room and occupant bookkeeping for boarding houses.
type Service struct {
	store  Store
	houses HouseReader
	logger *slog.Logger
}

// New constructs a Service.
func New(store Store, houses HouseReader, logger *slog.Logger) *Service {
	return &Service{store: store, houses: houses, logger: logger}
}

// CreateRoom adds a room to a boarding house.
func (s *Service) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	houseID, err := id.ParseHouseID(req.BoardingHouseID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid boarding_house_id")
	}

	exists, err := s.houses.Exists(ctx, houseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check boarding house")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "boarding house not found")
	}

	now := requestcontext.Now(ctx)
	room := &Room{
		ID:              id.NewRoomID(),
		BoardingHouseID: houseID,
		Name:            req.Name,
		Capacity:        req.Capacity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create room")
	}
	return room, nil
}

// ListRooms returns a boarding house's rooms.
func (s *Service) ListRooms(ctx context.Context, houseID id.HouseID) ([]*Room, error) {
	rooms, err := s.store.ListRoomsByHouse(ctx, houseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list rooms")
	}
	return rooms, nil
}

// DeleteRoom removes a room and, through the store, its occupants.
func (s *Service) DeleteRoom(ctx context.Context, roomID id.RoomID) error {
	if err := s.store.DeleteRoom(ctx, roomID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "room not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete room")
	}
	return nil
}

// AddOccupant assigns a tenant to a room, respecting its capacity.
func (s *Service) AddOccupant(ctx context.Context, req *CreateOccupantRequest) (*Occupant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	roomID, err := id.ParseRoomID(req.RoomID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid room_id")
	}

	room, err := s.store.FindRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "room not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load room")
	}

	current, err := s.store.CountOccupantsByRoom(ctx, roomID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count occupants")
	}
	if current >= room.Capacity {
		return nil, dErrors.Newf(dErrors.CodeConflict, "room %s is at capacity (%d)", room.Name, room.Capacity)
	}

	moveIn, err := dates.Parse(req.MoveInDate)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "move_in_date must be YYYY-MM-DD")
	}
	now := requestcontext.Now(ctx)
	occupant := &Occupant{
		ID:            id.NewOccupantID(),
		RoomID:        roomID,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		MoveInDate:    moveIn,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateOccupant(ctx, occupant); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create occupant")
	}
	return occupant, nil
}

// ListOccupants returns a room's occupants.
func (s *Service) ListOccupants(ctx context.Context, roomID id.RoomID) ([]*Occupant, error) {
	occupants, err := s.store.ListOccupantsByRoom(ctx, roomID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list occupants")
	}
	return occupants, nil
}

// UpdateOccupant applies edits to a tenant record.
func (s *Service) UpdateOccupant(ctx context.Context, occupantID id.OccupantID, req *UpdateOccupantRequest) (*Occupant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	occupant, err := s.store.FindOccupant(ctx, occupantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "occupant not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load occupant")
	}

	if req.Name != nil {
		occupant.Name = strings.TrimSpace(*req.Name)
	}
	if req.ContactNumber != nil {
		occupant.ContactNumber = strings.TrimSpace(*req.ContactNumber)
	}
	if req.MoveInDate != nil {
		moveIn, err := dates.Parse(*req.MoveInDate)
		if err != nil {
			return nil, dErrors.New(dErrors.CodeValidation, "move_in_date must be YYYY-MM-DD")
		}
		occupant.MoveInDate = moveIn
	}
	occupant.UpdatedAt = requestcontext.Now(ctx)

	if err := s.store.UpdateOccupant(ctx, occupant); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update occupant")
	}
	return occupant, nil
}

// RemoveOccupant deletes a tenant record.
func (s *Service) RemoveOccupant(ctx context.Context, occupantID id.OccupantID) error {
	if err := s.store.DeleteOccupant(ctx, occupantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "occupant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete occupant")
	}
	return nil
}

// HouseOccupancy totals rooms, capacity and occupants for a boarding house.
func (s *Service) HouseOccupancy(ctx context.Context, houseID id.HouseID) (*Occupancy, error) {
	rooms, err := s.store.ListRoomsByHouse(ctx, houseID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list rooms")
	}

	totals := &Occupancy{Rooms: len(rooms)}
	for _, room := range rooms {
		totals.Capacity += room.Capacity
		count, err := s.store.CountOccupantsByRoom(ctx, room.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count occupants")
		}
		totals.Occupants += count
	}
	return totals, nil
}
