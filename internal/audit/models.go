package audit

import (
	"time"

	id "bahay/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	// ActorID is who performed the action (the admin for compliance
	// decisions, the owner for registrations).
	ActorID id.UserID `json:"actor_id"`
	// Subject is the entity the action applied to, usually a house ID.
	Subject   string `json:"subject"`
	Action    Action `json:"action"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	// Device is the client summary recorded by the device middleware,
	// populated on auth events.
	Device string `json:"device,omitempty"`
}

// Action names an auditable domain action.
type Action string

const (
	ActionHouseRegistered Action = "house_registered"
	ActionHouseDeleted    Action = "house_deleted"
	ActionPermitVerified  Action = "permit_verified"
	ActionPermitRejected  Action = "permit_rejected"
	ActionUserCreated     Action = "user_created"
	ActionUserLogin       Action = "user_login"
)
