package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultProcessedEventTTL = 24 * time.Hour

// EventDeduplicator 記住已成功處理的 webhook event id
type EventDeduplicator interface {
	// Seen 回傳 event 是否已處理過
	Seen(ctx context.Context, eventID string) (bool, error)
	// MarkProcessed 處理成功後才標記，失敗的事件仍可被閘道重送
	MarkProcessed(ctx context.Context, eventID string) error
}

type RedisEventDeduplicator struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisEventDeduplicator(client redis.Cmdable, ttl time.Duration) EventDeduplicator {
	if ttl <= 0 {
		ttl = DefaultProcessedEventTTL
	}
	return &RedisEventDeduplicator{
		client: client,
		ttl:    ttl,
	}
}

// event key
func (d *RedisEventDeduplicator) getEventKey(eventID string) string {
	return fmt.Sprintf("webhook:event:%s", eventID)
}

func (d *RedisEventDeduplicator) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.getEventKey(eventID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *RedisEventDeduplicator) MarkProcessed(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, d.getEventKey(eventID), 1, d.ttl).Err()
}

// NoopEventDeduplicator 沒有 Redis 時使用；唯一性仍由資料庫保證
type NoopEventDeduplicator struct{}

func (NoopEventDeduplicator) Seen(context.Context, string) (bool, error) { return false, nil }

func (NoopEventDeduplicator) MarkProcessed(context.Context, string) error { return nil }
