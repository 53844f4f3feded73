package notification

import (
	"context"
	"errors"
	"log/slog"

	notifmetrics "bahay/internal/notification/metrics"
	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/sentinel"
	"bahay/pkg/requestcontext"
)

// Store persists notifications. Implementations return sentinel errors for
// infrastructure facts.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID id.UserID) ([]*Notification, error)
	CountUnread(ctx context.Context, userID id.UserID) (int, error)
	// MarkRead flips the read flag on the user's own notification. A miss
	// and someone else's notification are both sentinel.ErrNotFound.
	MarkRead(ctx context.Context, notifID id.NotificationID, userID id.UserID) error
	MarkAllRead(ctx context.Context, userID id.UserID) error
}

// UnreadCache is an optional fast path for the bell-widget counter. Cache
// failures are never fatal; the store is the source of truth.
type UnreadCache interface {
	Get(ctx context.Context, userID id.UserID) (int, bool)
	Set(ctx context.Context, userID id.UserID, count int)
	Invalidate(ctx context.Context, userID id.UserID)
}

// Service orchestrates notification delivery and the read/unread surface.
type Service struct {
	store   Store
	cache   UnreadCache
	logger  *slog.Logger
	metrics *notifmetrics.Metrics
}

type Option func(s *Service)

// WithUnreadCache installs a cache for unread counts.
func WithUnreadCache(cache UnreadCache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithMetrics installs delivery counters.
func WithMetrics(m *notifmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Emit appends a notification for the given user. It is the single creation
// path; workflow code treats it as fire-and-forget.
func (s *Service) Emit(ctx context.Context, userID id.UserID, title, message string, kind Type, relatedID string) (*Notification, error) {
	n, err := NewNotification(id.NewNotificationID(), userID, title, message, kind, relatedID, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create notification")
	}
	if s.metrics != nil {
		s.metrics.RecordEmitted(string(kind))
	}
	s.invalidate(ctx, userID)
	return n, nil
}

// ListByUser returns the user's notifications, newest first.
func (s *Service) ListByUser(ctx context.Context, userID id.UserID) ([]*Notification, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list notifications")
	}
	return list, nil
}

// UnreadCount returns the number of unread notifications, via the cache when
// one is installed.
func (s *Service) UnreadCount(ctx context.Context, userID id.UserID) (int, error) {
	if s.cache != nil {
		if count, ok := s.cache.Get(ctx, userID); ok {
			return count, nil
		}
	}
	count, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count unread notifications")
	}
	if s.cache != nil {
		s.cache.Set(ctx, userID, count)
	}
	return count, nil
}

// MarkRead flips a single notification to read. The flip is scoped to the
// caller's own notifications; another user's ID reads as not found.
func (s *Service) MarkRead(ctx context.Context, userID id.UserID, notifID id.NotificationID) error {
	if err := s.store.MarkRead(ctx, notifID, userID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "notification not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notification read")
	}
	s.invalidate(ctx, userID)
	return nil
}

// MarkAllRead flips every unread notification for the user.
func (s *Service) MarkAllRead(ctx context.Context, userID id.UserID) error {
	if err := s.store.MarkAllRead(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark notifications read")
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, userID id.UserID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
