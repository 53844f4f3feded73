package store

import (
	"context"
	"database/sql"
	"fmt"

	"bahay/internal/audit"
	id "bahay/pkg/domain"
)

// Postgres persists audit events. This store is pure I/O; event shaping
// belongs to the publisher.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (actor_id, subject, action, reason, request_id, device, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.ActorID.String(),
		event.Subject,
		string(event.Action),
		event.Reason,
		event.RequestID,
		event.Device,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

// ListByActor returns events recorded for the given actor, oldest first.
func (s *Postgres) ListByActor(ctx context.Context, actorID id.UserID) ([]audit.Event, error) {
	query := `
		SELECT actor_id, subject, action, reason, request_id, device, created_at
		FROM audit_events
		WHERE actor_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, actorID.String())
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var e audit.Event
		var actor string
		if err := rows.Scan(&actor, &e.Subject, &e.Action, &e.Reason, &e.RequestID, &e.Device, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		parsed, err := id.ParseUserID(actor)
		if err != nil {
			return nil, fmt.Errorf("scan audit actor: %w", err)
		}
		e.ActorID = parsed
		events = append(events, e)
	}
	return events, rows.Err()
}
