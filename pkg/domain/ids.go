// Package domain holds shared identifier types. IDs are typed UUID wrappers so
// a house ID can never be passed where an owner ID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "bahay/pkg/domain-errors"
)

type (
	// UserID identifies an account (admin or owner).
	UserID uuid.UUID
	// HouseID identifies a boarding house.
	HouseID uuid.UUID
	// RoomID identifies a room within a boarding house.
	RoomID uuid.UUID
	// OccupantID identifies an occupant within a room.
	OccupantID uuid.UUID
	// NotificationID identifies a notification.
	NotificationID uuid.UUID
)

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id HouseID) String() string        { return uuid.UUID(id).String() }
func (id RoomID) String() string         { return uuid.UUID(id).String() }
func (id OccupantID) String() string     { return uuid.UUID(id).String() }
func (id NotificationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id HouseID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// NewUserID generates a fresh user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewHouseID generates a fresh house ID.
func NewHouseID() HouseID { return HouseID(uuid.New()) }

// NewRoomID generates a fresh room ID.
func NewRoomID() RoomID { return RoomID(uuid.New()) }

// NewOccupantID generates a fresh occupant ID.
func NewOccupantID() OccupantID { return OccupantID(uuid.New()) }

// NewNotificationID generates a fresh notification ID.
func NewNotificationID() NotificationID { return NotificationID(uuid.New()) }

// parseUUID enforces the shared invariant: IDs must be valid, non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s id is required", kind)
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "invalid %s id", kind)
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeValidation, "%s id must not be nil", kind)
	}
	return parsed, nil
}

// ParseUserID parses a user ID at a trust boundary.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	return UserID(parsed), err
}

// ParseHouseID parses a boarding-house ID at a trust boundary.
func ParseHouseID(raw string) (HouseID, error) {
	parsed, err := parseUUID(raw, "boarding house")
	return HouseID(parsed), err
}

// ParseRoomID parses a room ID at a trust boundary.
func ParseRoomID(raw string) (RoomID, error) {
	parsed, err := parseUUID(raw, "room")
	return RoomID(parsed), err
}

// ParseOccupantID parses an occupant ID at a trust boundary.
func ParseOccupantID(raw string) (OccupantID, error) {
	parsed, err := parseUUID(raw, "occupant")
	return OccupantID(parsed), err
}

// ParseNotificationID parses a notification ID at a trust boundary.
func ParseNotificationID(raw string) (NotificationID, error) {
	parsed, err := parseUUID(raw, "notification")
	return NotificationID(parsed), err
}
