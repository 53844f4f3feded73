// Package notification delivers owner-facing messages produced by the
// compliance workflow and exposes the read/unread surface the portal bell
// widget consumes.
package notification

import (
	"strings"
	"time"

	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
)

// Type tags a notification for presentation.
type Type string

const (
	TypeApproval  Type = "approval"
	TypeRejection Type = "rejection"
	TypeWarning   Type = "warning"
	TypeInfo      Type = "info"
)

// ParseType validates a raw type string at a trust boundary.
func ParseType(raw string) (Type, bool) {
	switch Type(raw) {
	case TypeApproval, TypeRejection, TypeWarning, TypeInfo:
		return Type(raw), true
	}
	return "", false
}

// Notification is addressed to exactly one user. It is created once by a
// workflow decision and never mutated except to flip the read flag.
type Notification struct {
	ID        id.NotificationID `json:"id"`
	UserID    id.UserID         `json:"user_id"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Type      Type              `json:"type"`
	IsRead    bool              `json:"is_read"`
	RelatedID string            `json:"related_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewNotification constructs an unread notification after validating invariants.
func NewNotification(notifID id.NotificationID, userID id.UserID, title, message string, kind Type, relatedID string, now time.Time) (*Notification, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if userID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification user id is required")
	}
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification title is required")
	}
	if message == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "notification message is required")
	}
	if _, ok := ParseType(string(kind)); !ok {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown notification type")
	}
	return &Notification{
		ID:        notifID,
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		IsRead:    false,
		RelatedID: relatedID,
		CreatedAt: now,
	}, nil
}
