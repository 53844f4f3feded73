package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "bahay/pkg/domain"
	dErrors "bahay/pkg/domain-errors"
	"bahay/pkg/platform/sentinel"
)

// memStore is a minimal in-process Store for service tests. The full-featured
// twin lives in the store package; duplicating a tiny one here avoids an
// import cycle in white-box tests.
type memStore struct {
	items map[id.NotificationID]*Notification
}

func newMemStore() *memStore {
	return &memStore{items: make(map[id.NotificationID]*Notification)}
}

func (s *memStore) Create(_ context.Context, n *Notification) error {
	clone := *n
	s.items[n.ID] = &clone
	return nil
}

func (s *memStore) ListByUser(_ context.Context, userID id.UserID) ([]*Notification, error) {
	var out []*Notification
	for _, n := range s.items {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memStore) CountUnread(_ context.Context, userID id.UserID) (int, error) {
	count := 0
	for _, n := range s.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *memStore) MarkRead(_ context.Context, notifID id.NotificationID, userID id.UserID) error {
	n, ok := s.items[notifID]
	if !ok || n.UserID != userID {
		return sentinel.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (s *memStore) MarkAllRead(_ context.Context, userID id.UserID) error {
	for _, n := range s.items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

type fakeCache struct {
	counts      map[id.UserID]int
	gets        int
	hits        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: make(map[id.UserID]int)}
}

func (c *fakeCache) Get(_ context.Context, userID id.UserID) (int, bool) {
	c.gets++
	count, ok := c.counts[userID]
	if ok {
		c.hits++
	}
	return count, ok
}

func (c *fakeCache) Set(_ context.Context, userID id.UserID, count int) {
	c.counts[userID] = count
}

func (c *fakeCache) Invalidate(_ context.Context, userID id.UserID) {
	c.invalidated++
	delete(c.counts, userID)
}

func newTestService(opts ...Option) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(newMemStore(), logger, opts...)
}

func TestEmitValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Emit(context.Background(), id.NewUserID(), "", "body", TypeInfo, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.Emit(context.Background(), id.UserID{}, "Title", "body", TypeInfo, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestEmitStartsUnread(t *testing.T) {
	svc := newTestService()
	userID := id.NewUserID()

	n, err := svc.Emit(context.Background(), userID, "Title", "body", TypeApproval, "related-1")
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.Equal(t, "related-1", n.RelatedID)

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUnreadCountCacheAside(t *testing.T) {
	cache := newFakeCache()
	svc := newTestService(WithUnreadCache(cache))
	userID := id.NewUserID()

	_, err := svc.Emit(context.Background(), userID, "Title", "body", TypeInfo, "")
	require.NoError(t, err)

	// First read misses and populates; second read hits.
	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, cache.hits)
}

func TestMarkReadInvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc := newTestService(WithUnreadCache(cache))
	userID := id.NewUserID()

	n, err := svc.Emit(context.Background(), userID, "Title", "body", TypeInfo, "")
	require.NoError(t, err)

	_, err = svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(context.Background(), userID, n.ID))

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadUnknownID(t *testing.T) {
	svc := newTestService()

	err := svc.MarkRead(context.Background(), id.NewUserID(), id.NewNotificationID())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestMarkReadScopedToAddressee(t *testing.T) {
	svc := newTestService()
	owner := id.NewUserID()

	n, err := svc.Emit(context.Background(), owner, "Title", "body", TypeInfo, "")
	require.NoError(t, err)

	err = svc.MarkRead(context.Background(), id.NewUserID(), n.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	// The owner's copy stays unread.
	count, err := svc.UnreadCount(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkAllRead(t *testing.T) {
	svc := newTestService()
	userID := id.NewUserID()

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Emit(context.Background(), userID, title, "body", TypeWarning, "")
		require.NoError(t, err)
	}

	require.NoError(t, svc.MarkAllRead(context.Background(), userID))

	count, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
