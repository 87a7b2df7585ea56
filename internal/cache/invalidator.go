package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Query keys that dependent screens cache under. A successful batch commit
// deletes them so the next read refetches.
func KeyCandidateLines(churchID uuid.UUID, accountID *uuid.UUID) string {
	if accountID != nil {
		return fmt.Sprintf("conciliacao:candidates:%s:%s", churchID, *accountID)
	}
	return fmt.Sprintf("conciliacao:candidates:%s", churchID)
}

func KeyPendingTransactions(churchID uuid.UUID) string {
	return fmt.Sprintf("conciliacao:pending:%s", churchID)
}

func KeyCoverage(churchID uuid.UUID) string {
	return fmt.Sprintf("conciliacao:coverage:%s", churchID)
}

func KeyStats(churchID uuid.UUID) string {
	return fmt.Sprintf("conciliacao:stats:%s", churchID)
}

// Invalidator marks cached query results stale.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisInvalidator deletes the keys from redis.
type RedisInvalidator struct {
	client *redis.Client
}

func NewRedisInvalidator(client *redis.Client) *RedisInvalidator {
	return &RedisInvalidator{client: client}
}

func (i *RedisInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return i.client.Del(ctx, keys...).Err()
}

// NoopInvalidator is used when redis is not configured.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(ctx context.Context, keys ...string) error {
	return nil
}
