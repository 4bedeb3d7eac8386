package model

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	YoutubeID    string     `json:"youtubeId" db:"youtube_id" yaml:"youtubeId"`
	Title        string     `json:"title" db:"title" yaml:"title"`
	Description  *string    `json:"description" db:"description" yaml:"description"`
	ThumbnailURL *string    `json:"thumbnailUrl" db:"thumbnail_url" yaml:"thumbnailUrl"`
	ChannelID    *string    `json:"channelId" db:"channel_id" yaml:"channelId"`
	ChannelTitle *string    `json:"channelTitle" db:"channel_title" yaml:"channelTitle"`
	ViewCount    int        `json:"viewCount" db:"view_count" yaml:"viewCount"`
	LikeCount    int        `json:"likeCount" db:"like_count" yaml:"likeCount"`
	Duration     *string    `json:"duration" db:"duration" yaml:"duration"`
	ShowID       *uuid.UUID `json:"showId" db:"show_id" yaml:"-"`
	Tags         []string   `json:"tags" db:"tags" yaml:"tags"`
	Category     *string    `json:"category" db:"category" yaml:"category"`
	IsFeatured   bool       `json:"isFeatured" db:"is_featured" yaml:"isFeatured"`
	SortOrder    int        `json:"sortOrder" db:"sort_order" yaml:"sortOrder"`
	PublishedAt  *time.Time `json:"publishedAt" db:"published_at" yaml:"publishedAt"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" yaml:"-"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" yaml:"-"`
}
