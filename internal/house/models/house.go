package models

import (
	"time"

	"bahay/internal/permit"
	"bahay/pkg/dates"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
)

// BoardingHouse is the aggregate root for a registered boarding house.
//
// Invariants:
//   - Name, Barangay, Address, ContactNumber and PermitNumber are non-empty
//   - PermitExpiryDate is never before PermitIssueDate
//   - IsActive may be true only while PermitStatus == valid AND both
//     coordinates are pinned
//   - PermitStatus changes only through the compliance workflow (Verify or
//     Reject); a new registration is always pending and inactive
//   - Room and occupant edits never touch PermitStatus or IsActive
type BoardingHouse struct {
	ID                  id.HouseID    `json:"id"`
	OwnerID             id.UserID     `json:"owner_id"`
	Name                string        `json:"name"`
	Barangay            string        `json:"barangay"`
	Address             string        `json:"address"`
	ContactNumber       string        `json:"contact_number"`
	PermitNumber        string        `json:"permit_number"`
	PermitIssueDate     dates.Date    `json:"-"`
	PermitExpiryDate    dates.Date    `json:"-"`
	PermitDocument      *string       `json:"permit_document,omitempty"`
	Latitude            *float64      `json:"latitude,omitempty"`
	Longitude           *float64      `json:"longitude,omitempty"`
	PriceMin            *float64      `json:"price_min,omitempty"`
	PriceMax            *float64      `json:"price_max,omitempty"`
	GenderAccommodation *string       `json:"gender_accommodation,omitempty"`
	PermitStatus        permit.Status `json:"permit_status"`
	IsActive            bool          `json:"is_active"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// IsPinned reports whether both coordinates are present.
func (h *BoardingHouse) IsPinned() bool {
	return h.Latitude != nil && h.Longitude != nil
}

// ApplyDecision records the outcome of a permit verification.
func (h *BoardingHouse) ApplyDecision(status permit.Status, active bool, now time.Time) {
	h.PermitStatus = status
	h.IsActive = active
	h.UpdatedAt = now
}

// ApplyRejection is the administrative override: expired and inactive
// regardless of permit dates. A later Verify can still lift it.
func (h *BoardingHouse) ApplyRejection(now time.Time) {
	h.PermitStatus = permit.StatusExpired
	h.IsActive = false
	h.UpdatedAt = now
}

// Pin sets the geolocation. Pinning alone never activates a listing; the next
// Verify picks the new location up.
func (h *BoardingHouse) Pin(latitude, longitude float64, now time.Time) error {
	if latitude < -90 || latitude > 90 {
		return dErrors.New(dErrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if longitude < -180 || longitude > 180 {
		return dErrors.New(dErrors.CodeValidation, "longitude must be between -180 and 180")
	}
	h.Latitude = &latitude
	h.Longitude = &longitude
	h.UpdatedAt = now
	return nil
}

// NewBoardingHouse constructs a pending, inactive registration after
// validating invariants.
func NewBoardingHouse(houseID id.HouseID, ownerID id.UserID, req *RegisterRequest, now time.Time) (*BoardingHouse, error) {
	if ownerID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	issue, expiry, err := req.Dates()
	if err != nil {
		return nil, err
	}

	h := &BoardingHouse{
		ID:                  houseID,
		OwnerID:             ownerID,
		Name:                req.Name,
		Barangay:            req.Barangay,
		Address:             req.Address,
		ContactNumber:       req.ContactNumber,
		PermitNumber:        req.PermitNumber,
		PermitIssueDate:     issue,
		PermitExpiryDate:    expiry,
		PermitDocument:      req.PermitDocument,
		PriceMin:            req.PriceMin,
		PriceMax:            req.PriceMax,
		GenderAccommodation: req.GenderAccommodation,
		PermitStatus:        permit.StatusPending,
		IsActive:            false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if req.Latitude != nil && req.Longitude != nil {
		if err := h.Pin(*req.Latitude, *req.Longitude, now); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Decision is the caller-facing result of a Verify or Reject call, returned so
// in-memory UI state can be reconciled without a full reload.
type Decision struct {
	PermitStatus permit.Status `json:"permit_status"`
	IsActive     bool          `json:"is_active"`
}
