package repositories

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type TicketTypeRepositoryMock struct {
	mock.Mock
}

func NewTicketTypeRepositoryMock() *TicketTypeRepositoryMock {
	return &TicketTypeRepositoryMock{}
}

func (m *TicketTypeRepositoryMock) Create(ctx context.Context, ticketType *model.TicketType) (*model.TicketType, error) {
	args := m.Called(ctx, ticketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) ListByShowID(ctx context.Context, showID uuid.UUID) ([]*model.TicketType, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) ListByShowIDs(ctx context.Context, showIDs []uuid.UUID) (map[uuid.UUID][]*model.TicketType, error) {
	args := m.Called(ctx, showIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID][]*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*model.TicketType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) Update(ctx context.Context, id uuid.UUID, params model.UpdateTicketTypeParams) (*model.TicketType, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketTypeRepositoryMock) Upsert(ctx context.Context, tx pgx.Tx, ticketType *model.TicketType) (*model.TicketType, error) {
	args := m.Called(ctx, tx, ticketType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeRepositoryMock) DeleteByShowID(ctx context.Context, tx pgx.Tx, showID uuid.UUID) error {
	args := m.Called(ctx, tx, showID)
	return args.Error(0)
}

func (m *TicketTypeRepositoryMock) IncrementSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (*model.TicketType, error) {
	args := m.Called(ctx, tx, id, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}
