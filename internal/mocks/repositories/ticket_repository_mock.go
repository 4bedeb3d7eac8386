package repositories

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type TicketRepositoryMock struct {
	mock.Mock
}

func NewTicketRepositoryMock() *TicketRepositoryMock {
	return &TicketRepositoryMock{}
}

func (m *TicketRepositoryMock) FindBySessionID(ctx context.Context, sessionID string) (*model.Ticket, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) (int64, error) {
	args := m.Called(ctx, paymentIntentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TicketRepositoryMock) ListRecent(ctx context.Context, limit int) ([]*model.RecentTicket, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecentTicket), args.Error(1)
}

func (m *TicketRepositoryMock) CreateIfAbsent(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, bool, error) {
	args := m.Called(ctx, tx, ticket)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Ticket), args.Bool(1), args.Error(2)
}

func (m *TicketRepositoryMock) FindBySessionIDTx(ctx context.Context, tx pgx.Tx, sessionID string) (*model.Ticket, error) {
	args := m.Called(ctx, tx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}
