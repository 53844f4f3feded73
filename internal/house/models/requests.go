package models

import (
	"strings"

	"bahay/internal/permit"
	"bahay/pkg/dates"
	dErrors "bahay/pkg/domain-errors"
)

// RegisterRequest carries an owner's registration submission. Dates arrive as
// plain YYYY-MM-DD strings and are parsed here, at the boundary, so the
// evaluator never sees malformed input.
type RegisterRequest struct {
	Name                string   `json:"name"`
	Barangay            string   `json:"barangay"`
	Address             string   `json:"address"`
	ContactNumber       string   `json:"contact_number"`
	PermitNumber        string   `json:"permit_number"`
	PermitIssueDate     string   `json:"permit_issue_date"`
	PermitExpiryDate    string   `json:"permit_expiry_date"`
	PermitDocument      *string  `json:"permit_document,omitempty"`
	Latitude            *float64 `json:"latitude,omitempty"`
	Longitude           *float64 `json:"longitude,omitempty"`
	PriceMin            *float64 `json:"price_min,omitempty"`
	PriceMax            *float64 `json:"price_max,omitempty"`
	GenderAccommodation *string  `json:"gender_accommodation,omitempty"`
}

// Normalize trims whitespace from free-text fields.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Barangay = strings.TrimSpace(r.Barangay)
	r.Address = strings.TrimSpace(r.Address)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	r.PermitNumber = strings.TrimSpace(r.PermitNumber)
	r.PermitIssueDate = strings.TrimSpace(r.PermitIssueDate)
	r.PermitExpiryDate = strings.TrimSpace(r.PermitExpiryDate)
}

// Validate checks required fields and date ordering.
func (r *RegisterRequest) Validate() error {
	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Barangay == "":
		return dErrors.New(dErrors.CodeValidation, "barangay is required")
	case r.Address == "":
		return dErrors.New(dErrors.CodeValidation, "address is required")
	case r.ContactNumber == "":
		return dErrors.New(dErrors.CodeValidation, "contact number is required")
	case r.PermitNumber == "":
		return dErrors.New(dErrors.CodeValidation, "permit number is required")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return dErrors.New(dErrors.CodeValidation, "latitude and longitude must be provided together")
	}
	if r.PriceMin != nil && r.PriceMax != nil && *r.PriceMax < *r.PriceMin {
		return dErrors.New(dErrors.CodeValidation, "price_max must not be below price_min")
	}
	issue, expiry, err := r.Dates()
	if err != nil {
		return err
	}
	if expiry.Before(issue) {
		return dErrors.New(dErrors.CodeValidation, "permit expiry date must not precede the issue date")
	}
	return nil
}

// Dates parses the permit date strings.
func (r *RegisterRequest) Dates() (issue, expiry dates.Date, err error) {
	issue, err = dates.Parse(r.PermitIssueDate)
	if err != nil {
		return dates.Date{}, dates.Date{}, dErrors.New(dErrors.CodeValidation, "permit_issue_date must be YYYY-MM-DD")
	}
	expiry, err = dates.Parse(r.PermitExpiryDate)
	if err != nil {
		return dates.Date{}, dates.Date{}, dErrors.New(dErrors.CodeValidation, "permit_expiry_date must be YYYY-MM-DD")
	}
	return issue, expiry, nil
}

// UpdateRequest carries owner-editable fields. Nil pointers leave the field
// untouched. Permit date edits do not re-run the compliance rules; only an
// admin Verify does.
type UpdateRequest struct {
	Name                *string  `json:"name,omitempty"`
	Barangay            *string  `json:"barangay,omitempty"`
	Address             *string  `json:"address,omitempty"`
	ContactNumber       *string  `json:"contact_number,omitempty"`
	PermitNumber        *string  `json:"permit_number,omitempty"`
	PermitIssueDate     *string  `json:"permit_issue_date,omitempty"`
	PermitExpiryDate    *string  `json:"permit_expiry_date,omitempty"`
	PermitDocument      *string  `json:"permit_document,omitempty"`
	PriceMin            *float64 `json:"price_min,omitempty"`
	PriceMax            *float64 `json:"price_max,omitempty"`
	GenderAccommodation *string  `json:"gender_accommodation,omitempty"`
}

// Normalize trims whitespace from provided free-text fields.
func (r *UpdateRequest) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(r.Name)
	trim(r.Barangay)
	trim(r.Address)
	trim(r.ContactNumber)
	trim(r.PermitNumber)
	trim(r.PermitIssueDate)
	trim(r.PermitExpiryDate)
}

// Validate rejects blanking out required fields and malformed dates.
func (r *UpdateRequest) Validate() error {
	requireNonEmpty := func(v *string, field string) error {
		if v != nil && *v == "" {
			return dErrors.Newf(dErrors.CodeValidation, "%s must not be empty", field)
		}
		return nil
	}
	for _, check := range []struct {
		v     *string
		field string
	}{
		{r.Name, "name"},
		{r.Barangay, "barangay"},
		{r.Address, "address"},
		{r.ContactNumber, "contact number"},
		{r.PermitNumber, "permit number"},
	} {
		if err := requireNonEmpty(check.v, check.field); err != nil {
			return err
		}
	}
	for _, d := range []*string{r.PermitIssueDate, r.PermitExpiryDate} {
		if d == nil {
			continue
		}
		if _, err := dates.Parse(*d); err != nil {
			return dErrors.New(dErrors.CodeValidation, "permit dates must be YYYY-MM-DD")
		}
	}
	return nil
}

// PinLocationRequest sets the geolocation pin.
type PinLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ListFilter narrows admin listings. Zero values mean "no filter".
type ListFilter struct {
	Barangay string
	Status   permit.Status
	Search   string
}
