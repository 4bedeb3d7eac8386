package repository

import (
	"context"
	"fmt"

	"runway-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `
	id, youtube_id, title, description, thumbnail_url, channel_id, channel_title,
	view_count, like_count, duration, show_id, tags, category, is_featured,
	sort_order, published_at, created_at, updated_at`

type VideoRepository interface {
	List(ctx context.Context) ([]*model.Video, error)
	Upsert(ctx context.Context, video *model.Video) (*model.Video, error)
}

type VideoRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &VideoRepositoryImpl{
		pool: pool,
	}
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	err := row.Scan(
		&video.ID,
		&video.YoutubeID,
		&video.Title,
		&video.Description,
		&video.ThumbnailURL,
		&video.ChannelID,
		&video.ChannelTitle,
		&video.ViewCount,
		&video.LikeCount,
		&video.Duration,
		&video.ShowID,
		&video.Tags,
		&video.Category,
		&video.IsFeatured,
		&video.SortOrder,
		&video.PublishedAt,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List 精選影片優先，其次依 sort_order
func (r *VideoRepositoryImpl) List(ctx context.Context) ([]*model.Video, error) {
	query := `SELECT` + videoColumns + `
		FROM videos
		ORDER BY is_featured DESC, sort_order
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := make([]*model.Video, 0)
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return videos, nil
}

// Upsert 以 youtube_id 為鍵
func (r *VideoRepositoryImpl) Upsert(ctx context.Context, video *model.Video) (*model.Video, error) {
	query := `
		INSERT INTO videos (
			youtube_id, title, description, thumbnail_url, channel_id, channel_title,
			view_count, like_count, duration, show_id, tags, category, is_featured,
			sort_order, published_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (youtube_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			thumbnail_url = EXCLUDED.thumbnail_url,
			channel_id = EXCLUDED.channel_id,
			channel_title = EXCLUDED.channel_title,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			duration = EXCLUDED.duration,
			show_id = EXCLUDED.show_id,
			tags = EXCLUDED.tags,
			category = EXCLUDED.category,
			is_featured = EXCLUDED.is_featured,
			sort_order = EXCLUDED.sort_order,
			published_at = EXCLUDED.published_at,
			updated_at = NOW()
		RETURNING` + videoColumns

	saved, err := scanVideo(r.pool.QueryRow(ctx, query,
		video.YoutubeID, video.Title, video.Description, video.ThumbnailURL, video.ChannelID,
		video.ChannelTitle, video.ViewCount, video.LikeCount, video.Duration, video.ShowID,
		nonNilStrings(video.Tags), video.Category, video.IsFeatured, video.SortOrder, video.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert video: %w", err)
	}
	return saved, nil
}
