package store

import (
	"context"
	"database/sql"
	"fmt"

	"bahay/internal/notification"
	id "bahay/pkg/domain"
	"bahay/pkg/platform/sentinel"
)

// Postgres persists notifications. Pure I/O; read/unread policy lives in the
// service.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, type, is_read, related_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		n.ID.String(),
		n.UserID.String(),
		n.Title,
		n.Message,
		string(n.Type),
		n.IsRead,
		n.RelatedID,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (s *Postgres) ListByUser(ctx context.Context, userID id.UserID) ([]*notification.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, is_read, COALESCE(related_id, ''), created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Postgres) CountUnread(ctx context.Context, userID id.UserID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`
	if err := s.db.QueryRowContext(ctx, query, userID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (s *Postgres) MarkRead(ctx context.Context, notifID id.NotificationID, userID id.UserID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := s.db.ExecContext(ctx, query, notifID.String(), userID.String())
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) MarkAllRead(ctx context.Context, userID id.UserID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`
	if _, err := s.db.ExecContext(ctx, query, userID.String()); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*notification.Notification, error) {
	var n notification.Notification
	var rawID, rawUser, rawType string
	if err := row.Scan(&rawID, &rawUser, &n.Title, &n.Message, &rawType, &n.IsRead, &n.RelatedID, &n.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	notifID, err := id.ParseNotificationID(rawID)
	if err != nil {
		return nil, fmt.Errorf("scan notification id: %w", err)
	}
	userID, err := id.ParseUserID(rawUser)
	if err != nil {
		return nil, fmt.Errorf("scan notification user: %w", err)
	}
	kind, ok := notification.ParseType(rawType)
	if !ok {
		return nil, fmt.Errorf("scan notification: unknown type %q", rawType)
	}
	n.ID = notifID
	n.UserID = userID
	n.Type = kind
	return &n, nil
}
