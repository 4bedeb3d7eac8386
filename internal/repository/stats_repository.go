package repository

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Totals 後台統計用的各表筆數與已收款金額（cents）
type Totals struct {
	Shows        int
	Tickets      int
	Users        int
	Videos       int
	RevenueCents int64
}

type StatsRepository interface {
	Totals(ctx context.Context) (*Totals, error)
	RecentShows(ctx context.Context, limit int) ([]*model.RecentShow, error)
}

type StatsRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &StatsRepositoryImpl{
		pool: pool,
	}
}

func (r *StatsRepositoryImpl) Totals(ctx context.Context) (*Totals, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM shows),
			(SELECT COUNT(*) FROM tickets),
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM videos),
			(SELECT COALESCE(SUM(price_paid), 0) FROM tickets WHERE payment_status = $1)
	`
	var totals Totals
	err := r.pool.QueryRow(ctx, query, model.PaymentStatusSucceeded).Scan(
		&totals.Shows,
		&totals.Tickets,
		&totals.Users,
		&totals.Videos,
		&totals.RevenueCents,
	)
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *StatsRepositoryImpl) RecentShows(ctx context.Context, limit int) ([]*model.RecentShow, error) {
	query := `
		SELECT id, title, status, event_date, created_at
		FROM shows
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]*model.RecentShow, 0)
	for rows.Next() {
		var s model.RecentShow
		if err := rows.Scan(&s.ID, &s.Title, &s.Status, &s.EventDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		shows = append(shows, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shows, nil
}
