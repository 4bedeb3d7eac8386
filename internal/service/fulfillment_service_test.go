package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"runway-tickets/internal/metrics"
	repoMocks "runway-tickets/internal/mocks/repositories"
	"runway-tickets/internal/model"
	"runway-tickets/internal/queue"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

type fulfillmentDeps struct {
	db         *repoMocks.FakeDB
	ticketRepo *repoMocks.TicketRepositoryMock
	ttRepo     *repoMocks.TicketTypeRepositoryMock
	showRepo   *repoMocks.ShowRepositoryMock
	queue      queue.NotificationQueue
	cache      *memoryShowCache
}

func setupFulfillment(notifications queue.NotificationQueue) (*FulfillmentServiceImpl, *fulfillmentDeps) {
	deps := &fulfillmentDeps{
		db:         repoMocks.NewFakeDB(),
		ticketRepo: repoMocks.NewTicketRepositoryMock(),
		ttRepo:     repoMocks.NewTicketTypeRepositoryMock(),
		showRepo:   repoMocks.NewShowRepositoryMock(),
		queue:      notifications,
		cache:      &memoryShowCache{ok: true},
	}
	svc := NewFulfillmentService(deps.db, deps.ticketRepo, deps.ttRepo, deps.showRepo, notifications, deps.cache).(*FulfillmentServiceImpl)
	svc.newQRCode = func() string { return "qr-fixed" }
	return svc, deps
}

type failingQueue struct {
	queue.NoopNotificationQueue
}

func (failingQueue) Publish(context.Context, *model.TicketIssued) error {
	return errors.New("stream unavailable")
}

func paidSession(showID, ticketTypeID uuid.UUID, quantity string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_test_1",
		AmountTotal:   15000,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_test_1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Name:  "Ada Guest",
			Email: "ada@example.com",
		},
		Metadata: map[string]string{
			MetadataShowID:       showID.String(),
			MetadataTicketTypeID: ticketTypeID.String(),
			MetadataQuantity:     quantity,
		},
	}
}

func TestFulfillmentService_CompleteCheckout(t *testing.T) {
	ctx := context.Background()
	total := 200

	t.Run("Success", func(t *testing.T) {
		notifications := queue.NewMemoryNotificationQueue(1)
		svc, deps := setupFulfillment(notifications)
		showID := uuid.New()
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID, PriceUsd: 7500, TotalQuantity: &total}

		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.MatchedBy(func(ticket *model.Ticket) bool {
			return ticket.StripeSessionID == "cs_test_1" &&
				ticket.Quantity == 2 &&
				ticket.PricePaid == 15000 &&
				ticket.PaymentStatus == model.PaymentStatusSucceeded &&
				ticket.QRCode == "qr-fixed" &&
				*ticket.CustomerEmail == "ada@example.com" &&
				*ticket.StripePaymentIntentID == "pi_test_1"
		})).Return(func() *model.Ticket {
			email, name := "ada@example.com", "Ada Guest"
			return &model.Ticket{
				ID: uuid.New(), TicketTypeID: tt.ID, ShowID: showID, Quantity: 2, PricePaid: 15000,
				QRCode: "qr-fixed", CustomerEmail: &email, CustomerName: &name, PurchasedAt: time.Now(),
			}
		}(), true, nil).Once()
		deps.ttRepo.On("IncrementSold", ctx, deps.db.Tx, tt.ID, 2).Return(&model.TicketType{ID: tt.ID, SoldCount: 2, TotalQuantity: &total}, nil).Once()
		deps.showRepo.On("IncrementTicketsSold", ctx, deps.db.Tx, showID, 2).Return(nil).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "2"))

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.Created)
		assert.True(t, deps.db.Tx.Committed)
		assert.Equal(t, 1, deps.cache.invalidated)
		assert.False(t, deps.cache.ok)

		subCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		deliveries, err := notifications.Subscribe(subCtx)
		require.NoError(t, err)
		d := <-deliveries
		require.NotNil(t, d.Data)
		assert.Equal(t, result.Ticket.ID, d.Data.TicketID)
		assert.Equal(t, "ada@example.com", d.Data.CustomerEmail)
		assert.Equal(t, "qr-fixed", d.Data.QRCode)

		deps.ticketRepo.AssertExpectations(t)
		deps.ttRepo.AssertExpectations(t)
		deps.showRepo.AssertExpectations(t)
	})

	t.Run("Success - duplicate session issues nothing new", func(t *testing.T) {
		svc, deps := setupFulfillment(failingQueue{})
		showID := uuid.New()
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID}
		existing := &model.Ticket{ID: uuid.New(), ShowID: showID, TicketTypeID: tt.ID, Quantity: 2, StripeSessionID: "cs_test_1"}

		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.Anything).Return(existing, false, nil).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "2"))

		require.NoError(t, err)
		assert.False(t, result.Created)
		assert.Equal(t, existing.ID, result.Ticket.ID)
		assert.Zero(t, deps.cache.invalidated)
		deps.ttRepo.AssertNotCalled(t, "IncrementSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		deps.showRepo.AssertNotCalled(t, "IncrementTicketsSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success - invalid quantity defaults to one", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		showID := uuid.New()
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID}
		saved := &model.Ticket{ID: uuid.New(), ShowID: showID, TicketTypeID: tt.ID, Quantity: 1}

		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.MatchedBy(func(ticket *model.Ticket) bool {
			return ticket.Quantity == 1
		})).Return(saved, true, nil).Once()
		deps.ttRepo.On("IncrementSold", ctx, deps.db.Tx, tt.ID, 1).Return(tt, nil).Once()
		deps.showRepo.On("IncrementTicketsSold", ctx, deps.db.Tx, showID, 1).Return(nil).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "abc"))

		require.NoError(t, err)
		assert.True(t, result.Created)
		deps.ticketRepo.AssertExpectations(t)
	})

	t.Run("Success - oversold ticket type is still issued", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		showID := uuid.New()
		limit := 1
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID, TotalQuantity: &limit}
		saved := &model.Ticket{ID: uuid.New(), ShowID: showID, TicketTypeID: tt.ID, Quantity: 2}
		before := promtestutil.ToFloat64(metrics.TicketTypesOversold)

		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.Anything).Return(saved, true, nil).Once()
		deps.ttRepo.On("IncrementSold", ctx, deps.db.Tx, tt.ID, 2).Return(&model.TicketType{ID: tt.ID, SoldCount: 2, TotalQuantity: &limit}, nil).Once()
		deps.showRepo.On("IncrementTicketsSold", ctx, deps.db.Tx, showID, 2).Return(nil).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "2"))

		require.NoError(t, err)
		assert.True(t, result.Created)
		assert.True(t, deps.db.Tx.Committed)
		assert.Equal(t, before+1, promtestutil.ToFloat64(metrics.TicketTypesOversold))
	})

	t.Run("Success - notification failure does not fail issuance", func(t *testing.T) {
		svc, deps := setupFulfillment(failingQueue{})
		showID := uuid.New()
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID}
		saved := &model.Ticket{ID: uuid.New(), ShowID: showID, TicketTypeID: tt.ID, Quantity: 2}

		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.Anything).Return(saved, true, nil).Once()
		deps.ttRepo.On("IncrementSold", ctx, deps.db.Tx, tt.ID, 2).Return(tt, nil).Once()
		deps.showRepo.On("IncrementTicketsSold", ctx, deps.db.Tx, showID, 2).Return(nil).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "2"))

		require.NoError(t, err)
		assert.True(t, result.Created)
	})

	t.Run("Skipped - metadata missing", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})

		result, err := svc.CompleteCheckout(ctx, &stripe.CheckoutSession{ID: "cs_foreign"})

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Zero(t, deps.db.Begins)
	})

	t.Run("Skipped - ticket type deleted", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		ttID := uuid.New()
		deps.ttRepo.On("FindByID", ctx, ttID).Return(nil, apperrors.ErrTicketTypeNotFound).Once()

		result, err := svc.CompleteCheckout(ctx, paidSession(uuid.New(), ttID, "1"))

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Zero(t, deps.db.Begins)
	})

	t.Run("Failed - repository error rolls back", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		showID := uuid.New()
		tt := &model.TicketType{ID: uuid.New(), ShowID: showID}
		deps.ttRepo.On("FindByID", ctx, tt.ID).Return(tt, nil).Once()
		deps.ticketRepo.On("CreateIfAbsent", ctx, deps.db.Tx, mock.Anything).Return(nil, false, errors.New("db down")).Once()

		_, err := svc.CompleteCheckout(ctx, paidSession(showID, tt.ID, "1"))

		assert.EqualError(t, err, "db down")
		assert.True(t, deps.db.Tx.RolledBack)
		assert.False(t, deps.db.Tx.Committed)
		assert.Zero(t, deps.cache.invalidated)
	})
}

func TestFulfillmentService_MarkPaymentSucceeded(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		deps.ticketRepo.On("MarkPaymentSucceeded", ctx, "pi_1").Return(int64(1), nil).Once()

		require.NoError(t, svc.MarkPaymentSucceeded(ctx, "pi_1"))
		deps.ticketRepo.AssertExpectations(t)
	})

	t.Run("Success - empty id is ignored", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})

		require.NoError(t, svc.MarkPaymentSucceeded(ctx, ""))
		deps.ticketRepo.AssertNotCalled(t, "MarkPaymentSucceeded", mock.Anything, mock.Anything)
	})
}

func TestFulfillmentService_GetBySession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		deps.ticketRepo.On("FindBySessionID", ctx, "cs_test_1").Return(&model.Ticket{StripeSessionID: "cs_test_1"}, nil).Once()

		ticket, err := svc.GetBySession(ctx, "cs_test_1")

		require.NoError(t, err)
		assert.Equal(t, "cs_test_1", ticket.StripeSessionID)
	})

	t.Run("Failed - not issued yet", func(t *testing.T) {
		svc, deps := setupFulfillment(queue.NoopNotificationQueue{})
		deps.ticketRepo.On("FindBySessionID", ctx, "cs_pending").Return(nil, apperrors.ErrTicketNotFound).Once()

		_, err := svc.GetBySession(ctx, "cs_pending")

		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}
