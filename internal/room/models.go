// Package room manages rooms and their occupants. Room and occupant edits are
// bookkeeping only; they never feed back into a boarding house's permit status
// or activation.
package room

import (
	"strings"
	"time"

	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
)

// Room is a rentable unit within a boarding house.
type Room struct {
	ID              id.RoomID  `json:"id"`
	BoardingHouseID id.HouseID `json:"boarding_house_id"`
	Name            string     `json:"name"`
	Capacity        int        `json:"capacity"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Occupant is a tenant assigned to a room.
type Occupant struct {
	ID            id.OccupantID `json:"id"`
	RoomID        id.RoomID     `json:"room_id"`
	Name          string        `json:"name"`
	ContactNumber string        `json:"contact_number"`
	MoveInDate    dates.Date    `json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Occupancy summarizes how full a boarding house is.
type Occupancy struct {
	Rooms     int `json:"rooms"`
	Capacity  int `json:"capacity"`
	Occupants int `json:"occupants"`
}

// CreateRoomRequest carries a new-room submission.
type CreateRoomRequest struct {
	BoardingHouseID string `json:"boarding_house_id"`
	Name            string `json:"name"`
	Capacity        int    `json:"capacity"`
}

func (r *CreateRoomRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.BoardingHouseID == "":
		return dErrors.New(dErrors.CodeValidation, "boarding_house_id is required")
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Capacity < 1:
		return dErrors.New(dErrors.CodeValidation, "capacity must be at least 1")
	}
	return nil
}

// CreateOccupantRequest carries a new-occupant submission. MoveInDate arrives
// as a YYYY-MM-DD string.
type CreateOccupantRequest struct {
	RoomID        string `json:"room_id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	MoveInDate    string `json:"move_in_date"`
}

func (r *CreateOccupantRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	switch {
	case r.RoomID == "":
		return dErrors.New(dErrors.CodeValidation, "room_id is required")
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.ContactNumber == "":
		return dErrors.New(dErrors.CodeValidation, "contact number is required")
	}
	if _, err := dates.Parse(r.MoveInDate); err != nil {
		return dErrors.New(dErrors.CodeValidation, "move_in_date must be YYYY-MM-DD")
	}
	return nil
}

// UpdateOccupantRequest carries occupant edits. Nil pointers leave the field
// untouched.
type UpdateOccupantRequest struct {
	Name          *string `json:"name,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	MoveInDate    *string `json:"move_in_date,omitempty"`
}

func (r *UpdateOccupantRequest) Validate() error {
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name must not be empty")
	}
	if r.ContactNumber != nil && strings.TrimSpace(*r.ContactNumber) == "" {
		return dErrors.New(dErrors.CodeValidation, "contact number must not be empty")
	}
	if r.MoveInDate != nil {
		if _, err := dates.Parse(*r.MoveInDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "move_in_date must be YYYY-MM-DD")
		}
	}
	return nil
}
