package repository

import (
	"context"
	"errors"
	"fmt"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `
	id, ticket_type_id, show_id, user_id, ticket_number, price_paid, quantity,
	customer_name, customer_email, customer_phone, stripe_session_id,
	stripe_payment_intent_id, payment_status, is_checked_in, check_in_time,
	qr_code, promo_code, purchased_at`

type TicketRepository interface {
	FindBySessionID(ctx context.Context, sessionID string) (*model.Ticket, error)
	MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*model.RecentTicket, error)

	// Transaction methods
	CreateIfAbsent(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, bool, error)
	FindBySessionIDTx(ctx context.Context, tx pgx.Tx, sessionID string) (*model.Ticket, error)
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.TicketTypeID,
		&ticket.ShowID,
		&ticket.UserID,
		&ticket.TicketNumber,
		&ticket.PricePaid,
		&ticket.Quantity,
		&ticket.CustomerName,
		&ticket.CustomerEmail,
		&ticket.CustomerPhone,
		&ticket.StripeSessionID,
		&ticket.StripePaymentIntentID,
		&ticket.PaymentStatus,
		&ticket.IsCheckedIn,
		&ticket.CheckInTime,
		&ticket.QRCode,
		&ticket.PromoCode,
		&ticket.PurchasedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// CreateIfAbsent 以 stripe_session_id 做冪等；同一 session 第二次寫入時回傳 created=false
// user_id 依 customer_email 對應既有使用者
func (r *TicketRepositoryImpl) CreateIfAbsent(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, bool, error) {
	query := `
		INSERT INTO tickets (
			ticket_type_id, show_id, user_id, price_paid, quantity,
			customer_name, customer_email, customer_phone, stripe_session_id,
			stripe_payment_intent_id, payment_status, qr_code
		)
		VALUES (
			$1, $2, (SELECT id FROM users WHERE email = $7), $3, $4,
			$5, $7, $6, $8,
			$9, $10, $11
		)
		ON CONFLICT (stripe_session_id) DO NOTHING
		RETURNING` + ticketColumns

	created, err := scanTicket(tx.QueryRow(ctx, query,
		ticket.TicketTypeID, ticket.ShowID, ticket.PricePaid, ticket.Quantity,
		ticket.CustomerName, ticket.CustomerPhone, ticket.CustomerEmail, ticket.StripeSessionID,
		ticket.StripePaymentIntentID, ticket.PaymentStatus, ticket.QRCode,
	))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to create ticket: %w", err)
	}

	existing, err := r.FindBySessionIDTx(ctx, tx, ticket.StripeSessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *TicketRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.Ticket, error) {
	return r.findBySessionID(ctx, r.pool, sessionID)
}

func (r *TicketRepositoryImpl) FindBySessionIDTx(ctx context.Context, tx pgx.Tx, sessionID string) (*model.Ticket, error) {
	return r.findBySessionID(ctx, tx, sessionID)
}

func (r *TicketRepositoryImpl) findBySessionID(ctx context.Context, q queryRower, sessionID string) (*model.Ticket, error) {
	query := `SELECT` + ticketColumns + `
		FROM tickets
		WHERE stripe_session_id = $1
	`
	ticket, err := scanTicket(q.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

// MarkPaymentSucceeded 回傳受影響的票券數；已是 succeeded 的不重複更新
func (r *TicketRepositoryImpl) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error) {
	query := `
		UPDATE tickets
		SET payment_status = $1
		WHERE stripe_payment_intent_id = $2 AND payment_status <> $1
	`
	result, err := r.pool.Exec(ctx, query, model.PaymentStatusSucceeded, paymentIntentID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark payment succeeded: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *TicketRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*model.RecentTicket, error) {
	query := `
		SELECT id, customer_name, customer_email, price_paid, quantity, purchased_at
		FROM tickets
		ORDER BY purchased_at DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.RecentTicket, 0)
	for rows.Next() {
		var t model.RecentTicket
		if err := rows.Scan(&t.ID, &t.CustomerName, &t.CustomerEmail, &t.PricePaid, &t.Quantity, &t.PurchasedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}
