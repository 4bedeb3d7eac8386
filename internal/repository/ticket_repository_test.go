package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRepository_CreateIfAbsent(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTicketRepository(testDB)
	show := createTestShow(t, ctx, "miami", model.ShowStatusPublished)
	tt := createTestTicketType(t, ctx, show.ID, "GA", 7500, intPtr(500))

	var first *model.Ticket
	withTx(t, ctx, func(tx pgx.Tx) {
		ticket, created, err := repo.CreateIfAbsent(ctx, tx, newTestTicket(show, tt, "cs_test_dup", "ana@example.com"))
		require.NoError(t, err)
		assert.True(t, created)
		first = ticket
	})

	withTx(t, ctx, func(tx pgx.Tx) {
		ticket, created, err := repo.CreateIfAbsent(ctx, tx, newTestTicket(show, tt, "cs_test_dup", "ana@example.com"))
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, ticket.ID)
	})

	var count int
	require.NoError(t, testDB.QueryRow(ctx, "SELECT COUNT(*) FROM tickets WHERE stripe_session_id = $1", "cs_test_dup").Scan(&count))
	assert.Equal(t, 1, count)
}

// 同一 session 的 webhook 同時抵達時只能開出一張票
func TestTicketRepository_CreateIfAbsent_Concurrent(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTicketRepository(testDB)
	show := createTestShow(t, ctx, "miami", model.ShowStatusPublished)
	tt := createTestTicketType(t, ctx, show.ID, "GA", 7500, nil)

	const deliveries = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = make(map[uuid.UUID]struct{})
		errs    []error
	)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticket, isNew, err := createInOwnTx(ctx, repo, newTestTicket(show, tt, "cs_test_race", "ana@example.com"))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if isNew {
				created++
			}
			ids[ticket.ID] = struct{}{}
		}()
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Equal(t, 1, created)
	assert.Len(t, ids, 1)
}

func createInOwnTx(ctx context.Context, repo TicketRepository, ticket *model.Ticket) (*model.Ticket, bool, error) {
	tx, err := testDB.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)
	saved, created, err := repo.CreateIfAbsent(ctx, tx, ticket)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit: %w", err)
	}
	return saved, created, nil
}

func TestTicketRepository_LinksExistingUser(t *testing.T) {
	ctx := setupTest(t)
	userID := uuid.New()
	_, err := NewUserRepository(testDB).InsertIfAbsent(ctx, &model.User{ID: userID, Email: "ana@example.com", Role: model.UserRoleViewer})
	require.NoError(t, err)
	show := createTestShow(t, ctx, "miami", model.ShowStatusPublished)
	tt := createTestTicketType(t, ctx, show.ID, "GA", 7500, nil)

	withTx(t, ctx, func(tx pgx.Tx) {
		ticket, _, err := NewTicketRepository(testDB).CreateIfAbsent(ctx, tx, newTestTicket(show, tt, "cs_linked", "ana@example.com"))
		require.NoError(t, err)
		require.NotNil(t, ticket.UserID)
		assert.Equal(t, userID, *ticket.UserID)
	})
}

func TestTicketRepository_MarkPaymentSucceeded(t *testing.T) {
	ctx := setupTest(t)
	repo := NewTicketRepository(testDB)
	show := createTestShow(t, ctx, "miami", model.ShowStatusPublished)
	tt := createTestTicketType(t, ctx, show.ID, "GA", 7500, nil)

	ticket := newTestTicket(show, tt, "cs_pi", "ana@example.com")
	paymentIntent := "pi_123"
	ticket.StripePaymentIntentID = &paymentIntent
	withTx(t, ctx, func(tx pgx.Tx) {
		_, _, err := repo.CreateIfAbsent(ctx, tx, ticket)
		require.NoError(t, err)
	})

	updated, err := repo.MarkPaymentSucceeded(ctx, paymentIntent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	updated, err = repo.MarkPaymentSucceeded(ctx, paymentIntent)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	saved, err := repo.FindBySessionID(ctx, "cs_pi")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusSucceeded, saved.PaymentStatus)

	_, err = repo.FindBySessionID(ctx, "cs_unknown")
	assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
}
