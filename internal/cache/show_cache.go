package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"runway-tickets/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	publishedShowsKey        = "shows:published"
	DefaultPublishedShowsTTL = time.Minute
)

// ShowCache 公開秀展列表的快取；後台寫入時失效
type ShowCache interface {
	GetPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, bool, error)
	SetPublished(ctx context.Context, shows []*model.ShowWithTicketTypes) error
	Invalidate(ctx context.Context) error
}

type RedisShowCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisShowCache(client redis.Cmdable, ttl time.Duration) ShowCache {
	if ttl <= 0 {
		ttl = DefaultPublishedShowsTTL
	}
	return &RedisShowCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisShowCache) GetPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, bool, error) {
	raw, err := c.client.Get(ctx, publishedShowsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var shows []*model.ShowWithTicketTypes
	if err := json.Unmarshal(raw, &shows); err != nil {
		return nil, false, fmt.Errorf("decode cached shows: %w", err)
	}
	return shows, true, nil
}

func (c *RedisShowCache) SetPublished(ctx context.Context, shows []*model.ShowWithTicketTypes) error {
	raw, err := json.Marshal(shows)
	if err != nil {
		return fmt.Errorf("encode shows: %w", err)
	}
	return c.client.Set(ctx, publishedShowsKey, raw, c.ttl).Err()
}

func (c *RedisShowCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, publishedShowsKey).Err()
}

// NoopShowCache 永遠 miss
type NoopShowCache struct{}

func (NoopShowCache) GetPublished(context.Context) ([]*model.ShowWithTicketTypes, bool, error) {
	return nil, false, nil
}

func (NoopShowCache) SetPublished(context.Context, []*model.ShowWithTicketTypes) error { return nil }

func (NoopShowCache) Invalidate(context.Context) error { return nil }
