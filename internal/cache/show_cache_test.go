package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"runway-tickets/internal/model"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisShowCache(t *testing.T) {
	ctx := context.Background()
	price := int64(7500)
	shows := []*model.ShowWithTicketTypes{
		{
			Show:        model.Show{ID: uuid.New(), Title: "Miami Swim Week 2025", Slug: "miami-swim-week-2025", Status: model.ShowStatusPublished},
			TicketTypes: []*model.TicketType{{ID: uuid.New(), Name: "General Admission", PriceUsd: price}},
			MinPrice:    &price,
		},
	}
	raw, err := json.Marshal(shows)
	require.NoError(t, err)

	t.Run("Success - miss", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisShowCache(db, time.Minute)
		mock.ExpectGet(publishedShowsKey).RedisNil()

		got, ok, err := c.GetPublished(ctx)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - hit", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisShowCache(db, time.Minute)
		mock.ExpectGet(publishedShowsKey).SetVal(string(raw))

		got, ok, err := c.GetPublished(ctx)

		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, got, 1)
		assert.Equal(t, "miami-swim-week-2025", got[0].Slug)
		assert.Equal(t, int64(7500), *got[0].MinPrice)
	})

	t.Run("Success - set", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisShowCache(db, time.Minute)
		mock.ExpectSet(publishedShowsKey, raw, time.Minute).SetVal("OK")

		assert.NoError(t, c.SetPublished(ctx, shows))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - invalidate", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisShowCache(db, time.Minute)
		mock.ExpectDel(publishedShowsKey).SetVal(1)

		assert.NoError(t, c.Invalidate(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failed - corrupt entry", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		c := NewRedisShowCache(db, time.Minute)
		mock.ExpectGet(publishedShowsKey).SetVal("{not json")

		_, ok, err := c.GetPublished(ctx)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}
