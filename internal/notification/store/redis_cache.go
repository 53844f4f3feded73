package store

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	id "bahay/pkg/domain"
)

// unreadKeyPrefix namespaces the bell-counter keys.
const unreadKeyPrefix = "bahay:unread:"

// RedisUnreadCache caches per-user unread counts. Every failure degrades to a
// cache miss; the notification store remains the source of truth.
type RedisUnreadCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisUnreadCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisUnreadCache {
	return &RedisUnreadCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisUnreadCache) Get(ctx context.Context, userID id.UserID) (int, bool) {
	val, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "unread cache get failed", "error", err)
		}
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *RedisUnreadCache) Set(ctx context.Context, userID id.UserID, count int) {
	if err := c.client.Set(ctx, unreadKey(userID), count, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "unread cache set failed", "error", err)
	}
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID id.UserID) {
	if err := c.client.Del(ctx, unreadKey(userID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "unread cache invalidate failed", "error", err)
	}
}

func unreadKey(userID id.UserID) string {
	return unreadKeyPrefix + userID.String()
}
