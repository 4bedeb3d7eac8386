package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const showColumns = `
	id, title, slug, description, show_type, venue_name, venue_address, city, country,
	event_date, doors_open, show_start, timezone, cover_image_url, gallery_urls,
	promo_video_url, is_ticketed, tickets_sold_count, live_stream_url, stream_platform,
	is_live_now, designers, sponsors, status, is_featured, created_at, updated_at`

type ShowRepository interface {
	List(ctx context.Context) ([]*model.Show, error)
	ListByStatus(ctx context.Context, status model.ShowStatus) ([]*model.Show, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Show, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateShowParams) (*model.Show, error)

	// Transaction methods
	Upsert(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error)
	Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error
	IncrementTicketsSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error
}

type ShowRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewShowRepository(pool *pgxpool.Pool) ShowRepository {
	return &ShowRepositoryImpl{
		pool: pool,
	}
}

func scanShow(row pgx.Row) (*model.Show, error) {
	var show model.Show
	err := row.Scan(
		&show.ID,
		&show.Title,
		&show.Slug,
		&show.Description,
		&show.ShowType,
		&show.VenueName,
		&show.VenueAddress,
		&show.City,
		&show.Country,
		&show.EventDate,
		&show.DoorsOpen,
		&show.ShowStart,
		&show.Timezone,
		&show.CoverImageURL,
		&show.GalleryURLs,
		&show.PromoVideoURL,
		&show.IsTicketed,
		&show.TicketsSoldCount,
		&show.LiveStreamURL,
		&show.StreamPlatform,
		&show.IsLiveNow,
		&show.Designers,
		&show.Sponsors,
		&show.Status,
		&show.IsFeatured,
		&show.CreatedAt,
		&show.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &show, nil
}

func (r *ShowRepositoryImpl) collect(rows pgx.Rows) ([]*model.Show, error) {
	defer rows.Close()

	shows := make([]*model.Show, 0)
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}

// Upsert slug 已存在時覆寫該筆秀展（seed 與後台新增共用）
func (r *ShowRepositoryImpl) Upsert(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error) {
	query := `
		INSERT INTO shows (
			title, slug, description, show_type, venue_name, venue_address, city, country,
			event_date, doors_open, show_start, timezone, cover_image_url, gallery_urls,
			promo_video_url, is_ticketed, live_stream_url, stream_platform, is_live_now,
			designers, sponsors, status, is_featured
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			show_type = EXCLUDED.show_type,
			venue_name = EXCLUDED.venue_name,
			venue_address = EXCLUDED.venue_address,
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			event_date = EXCLUDED.event_date,
			doors_open = EXCLUDED.doors_open,
			show_start = EXCLUDED.show_start,
			timezone = EXCLUDED.timezone,
			cover_image_url = EXCLUDED.cover_image_url,
			gallery_urls = EXCLUDED.gallery_urls,
			promo_video_url = EXCLUDED.promo_video_url,
			is_ticketed = EXCLUDED.is_ticketed,
			live_stream_url = EXCLUDED.live_stream_url,
			stream_platform = EXCLUDED.stream_platform,
			is_live_now = EXCLUDED.is_live_now,
			designers = EXCLUDED.designers,
			sponsors = EXCLUDED.sponsors,
			status = EXCLUDED.status,
			is_featured = EXCLUDED.is_featured,
			updated_at = NOW()
		RETURNING` + showColumns

	saved, err := scanShow(tx.QueryRow(ctx, query,
		show.Title, show.Slug, show.Description, show.ShowType, show.VenueName, show.VenueAddress,
		show.City, show.Country, show.EventDate, show.DoorsOpen, show.ShowStart, show.Timezone,
		show.CoverImageURL, nonNilStrings(show.GalleryURLs), show.PromoVideoURL, show.IsTicketed,
		show.LiveStreamURL, show.StreamPlatform, show.IsLiveNow, nonNilStrings(show.Designers),
		nonNilStrings(show.Sponsors), show.Status, show.IsFeatured,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert show: %w", err)
	}
	return saved, nil
}

func (r *ShowRepositoryImpl) List(ctx context.Context) ([]*model.Show, error) {
	query := `SELECT` + showColumns + `
		FROM shows
		ORDER BY event_date DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *ShowRepositoryImpl) ListByStatus(ctx context.Context, status model.ShowStatus) ([]*model.Show, error) {
	query := `SELECT` + showColumns + `
		FROM shows
		WHERE status = $1
		ORDER BY event_date DESC
	`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *ShowRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Show, error) {
	query := `SELECT` + showColumns + `
		FROM shows
		WHERE id = $1
	`
	show, err := scanShow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShowNotFound
		}
		return nil, err
	}
	return show, nil
}

func (r *ShowRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateShowParams) (*model.Show, error) {
	b := newUpdateBuilder()

	if params.Title != nil {
		b.set("title", *params.Title)
	}
	if params.Slug != nil {
		b.set("slug", *params.Slug)
	}
	if params.Description != nil {
		b.set("description", *params.Description)
	}
	if params.ShowType != nil {
		b.set("show_type", *params.ShowType)
	}
	if params.VenueName != nil {
		b.set("venue_name", *params.VenueName)
	}
	if params.VenueAddress != nil {
		b.set("venue_address", *params.VenueAddress)
	}
	if params.City != nil {
		b.set("city", *params.City)
	}
	if params.Country != nil {
		b.set("country", *params.Country)
	}
	if params.EventDate != nil {
		b.set("event_date", *params.EventDate)
	}
	if params.DoorsOpen != nil {
		b.set("doors_open", *params.DoorsOpen)
	}
	if params.ShowStart != nil {
		b.set("show_start", *params.ShowStart)
	}
	if params.Timezone != nil {
		b.set("timezone", *params.Timezone)
	}
	if params.CoverImageURL != nil {
		b.set("cover_image_url", *params.CoverImageURL)
	}
	if params.GalleryURLs != nil {
		b.set("gallery_urls", nonNilStrings(*params.GalleryURLs))
	}
	if params.PromoVideoURL != nil {
		b.set("promo_video_url", *params.PromoVideoURL)
	}
	if params.IsTicketed != nil {
		b.set("is_ticketed", *params.IsTicketed)
	}
	if params.LiveStreamURL != nil {
		b.set("live_stream_url", *params.LiveStreamURL)
	}
	if params.StreamPlatform != nil {
		b.set("stream_platform", *params.StreamPlatform)
	}
	if params.IsLiveNow != nil {
		b.set("is_live_now", *params.IsLiveNow)
	}
	if params.Designers != nil {
		b.set("designers", nonNilStrings(*params.Designers))
	}
	if params.Sponsors != nil {
		b.set("sponsors", nonNilStrings(*params.Sponsors))
	}
	if params.Status != nil {
		b.set("status", *params.Status)
	}
	if params.IsFeatured != nil {
		b.set("is_featured", *params.IsFeatured)
	}

	if b.empty() {
		return r.FindByID(ctx, id)
	}
	b.set("updated_at", time.Now().UTC())

	query, args := b.build("shows", id, showColumns)
	show, err := scanShow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrShowNotFound
		}
		if isUniqueViolation(err) && params.Slug != nil {
			return nil, fmt.Errorf("%w: slug %q already in use", apperrors.ErrInvalidInput, *params.Slug)
		}
		return nil, fmt.Errorf("failed to update show: %w", err)
	}
	return show, nil
}

func (r *ShowRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `DELETE FROM shows WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete show: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrShowNotFound
	}
	return nil
}

func (r *ShowRepositoryImpl) IncrementTicketsSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE shows
		SET tickets_sold_count = tickets_sold_count + $1, updated_at = $2
		WHERE id = $3
	`
	result, err := tx.Exec(ctx, query, quantity, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to increment tickets sold: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrShowNotFound
	}
	return nil
}
