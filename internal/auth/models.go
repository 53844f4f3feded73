// Package auth manages user accounts and the JWT login surface.
package auth

import (
	"strings"
	"time"

	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
)

// Role separates the municipal admin from boarding-house owners.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User is an account in the portal. PasswordHash is a bcrypt hash, never the
// plaintext password.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignUpRequest carries a new-account submission. Self-service accounts are
// always owners; admins are provisioned out of band.
type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *SignUpRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *SignUpRequest) Validate() error {
	r.Normalize()
	switch {
	case r.Email == "" || !strings.Contains(r.Email, "@"):
		return dErrors.New(dErrors.CodeValidation, "a valid email is required")
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case len(r.Password) < 8:
		return dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	return nil
}

// LoginRequest carries a credential check.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	r.Normalize()
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email and password are required")
	}
	return nil
}

// TokenResult is the login response: a signed access token plus the account it
// identifies.
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        *User  `json:"user"`
}
