package repository

import (
	"context"
	"errors"
	"fmt"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketTypeColumns = `
	id, show_id, name, description, price_usd, total_quantity, sold_count, features,
	stripe_price_id, is_featured, sort_order, is_active, created_at`

type TicketTypeRepository interface {
	Create(ctx context.Context, ticketType *model.TicketType) (*model.TicketType, error)
	ListByShowID(ctx context.Context, showID uuid.UUID) ([]*model.TicketType, error)
	ListByShowIDs(ctx context.Context, showIDs []uuid.UUID) (map[uuid.UUID][]*model.TicketType, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.TicketType, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateTicketTypeParams) (*model.TicketType, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Transaction methods
	Upsert(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error)
	DeleteByShowID(ctx context.Context, tx pgx.Tx, showID uuid.UUID) error
	IncrementSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (*model.TicketType, error)
}

type TicketTypeRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketTypeRepository(pool *pgxpool.Pool) TicketTypeRepository {
	return &TicketTypeRepositoryImpl{
		pool: pool,
	}
}

func scanTicketType(row pgx.Row) (*model.TicketType, error) {
	var tt model.TicketType
	err := row.Scan(
		&tt.ID,
		&tt.ShowID,
		&tt.Name,
		&tt.Description,
		&tt.PriceUsd,
		&tt.TotalQuantity,
		&tt.SoldCount,
		&tt.Features,
		&tt.StripePriceID,
		&tt.IsFeatured,
		&tt.SortOrder,
		&tt.IsActive,
		&tt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

const insertTicketTypeQuery = `
	INSERT INTO ticket_types (
		show_id, name, description, price_usd, total_quantity, features,
		stripe_price_id, is_featured, sort_order, is_active
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func ticketTypeArgs(tt *model.TicketType) []interface{} {
	return []interface{}{
		tt.ShowID, tt.Name, tt.Description, tt.PriceUsd, tt.TotalQuantity, nonNilStrings(tt.Features),
		tt.StripePriceID, tt.IsFeatured, tt.SortOrder, tt.IsActive,
	}
}

func (r *TicketTypeRepositoryImpl) Create(ctx context.Context, ticketType *model.TicketType) (*model.TicketType, error) {
	query := insertTicketTypeQuery + `
	RETURNING` + ticketTypeColumns

	saved, err := scanTicketType(r.pool.QueryRow(ctx, query, ticketTypeArgs(ticketType)...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateTicketType
		}
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}
	return saved, nil
}

// Upsert 以 (show_id, name) 為鍵，已存在則更新價格等欄位，sold_count 保留
func (r *TicketTypeRepositoryImpl) Upsert(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error) {
	query := insertTicketTypeQuery + `
	ON CONFLICT (show_id, name) DO UPDATE SET
		description = EXCLUDED.description,
		price_usd = EXCLUDED.price_usd,
		total_quantity = EXCLUDED.total_quantity,
		features = EXCLUDED.features,
		stripe_price_id = EXCLUDED.stripe_price_id,
		is_featured = EXCLUDED.is_featured,
		sort_order = EXCLUDED.sort_order,
		is_active = EXCLUDED.is_active
	RETURNING` + ticketTypeColumns

	saved, err := scanTicketType(tx.QueryRow(ctx, query, ticketTypeArgs(ticketType)...))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert ticket type: %w", err)
	}
	return saved, nil
}

func (r *TicketTypeRepositoryImpl) ListByShowID(ctx context.Context, showID uuid.UUID) ([]*model.TicketType, error) {
	grouped, err := r.ListByShowIDs(ctx, []uuid.UUID{showID})
	if err != nil {
		return nil, err
	}
	if list, ok := grouped[showID]; ok {
		return list, nil
	}
	return make([]*model.TicketType, 0), nil
}

// ListByShowIDs 一次查出多個秀展的票種，依 sort_order、價格排序
func (r *TicketTypeRepositoryImpl) ListByShowIDs(ctx context.Context, showIDs []uuid.UUID) (map[uuid.UUID][]*model.TicketType, error) {
	grouped := make(map[uuid.UUID][]*model.TicketType, len(showIDs))
	if len(showIDs) == 0 {
		return grouped, nil
	}

	query := `SELECT` + ticketTypeColumns + `
		FROM ticket_types
		WHERE show_id = ANY($1)
		ORDER BY sort_order, price_usd
	`
	rows, err := r.pool.Query(ctx, query, showIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		tt, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		grouped[tt.ShowID] = append(grouped[tt.ShowID], tt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grouped, nil
}

func (r *TicketTypeRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.TicketType, error) {
	query := `SELECT` + ticketTypeColumns + `
		FROM ticket_types
		WHERE id = $1
	`
	tt, err := scanTicketType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, err
	}
	return tt, nil
}

func (r *TicketTypeRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateTicketTypeParams) (*model.TicketType, error) {
	b := newUpdateBuilder()

	if params.Name != nil {
		b.set("name", *params.Name)
	}
	if params.Description != nil {
		b.set("description", *params.Description)
	}
	if params.PriceUsd != nil {
		b.set("price_usd", *params.PriceUsd)
	}
	if params.ClearTotalQuantity {
		b.set("total_quantity", nil)
	} else if params.TotalQuantity != nil {
		b.set("total_quantity", *params.TotalQuantity)
	}
	if params.Features != nil {
		b.set("features", nonNilStrings(*params.Features))
	}
	if params.StripePriceID != nil {
		b.set("stripe_price_id", *params.StripePriceID)
	}
	if params.IsFeatured != nil {
		b.set("is_featured", *params.IsFeatured)
	}
	if params.SortOrder != nil {
		b.set("sort_order", *params.SortOrder)
	}
	if params.IsActive != nil {
		b.set("is_active", *params.IsActive)
	}

	if b.empty() {
		return r.FindByID(ctx, id)
	}

	query, args := b.build("ticket_types", id, ticketTypeColumns)
	tt, err := scanTicketType(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateTicketType
		}
		return nil, fmt.Errorf("failed to update ticket type: %w", err)
	}
	return tt, nil
}

func (r *TicketTypeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM ticket_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrTicketTypeInUse
		}
		return fmt.Errorf("failed to delete ticket type: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketTypeNotFound
	}
	return nil
}

func (r *TicketTypeRepositoryImpl) DeleteByShowID(ctx context.Context, tx pgx.Tx, showID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ticket_types WHERE show_id = $1`, showID); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrTicketTypeInUse
		}
		return fmt.Errorf("failed to delete ticket types: %w", err)
	}
	return nil
}

// IncrementSold 回傳更新後的票種，呼叫端可據此判斷是否超賣
func (r *TicketTypeRepositoryImpl) IncrementSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (*model.TicketType, error) {
	query := `
		UPDATE ticket_types
		SET sold_count = sold_count + $1
		WHERE id = $2
		RETURNING` + ticketTypeColumns

	tt, err := scanTicketType(tx.QueryRow(ctx, query, quantity, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("failed to increment sold count: %w", err)
	}
	return tt, nil
}
