package repositories

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type ShowRepositoryMock struct {
	mock.Mock
}

func NewShowRepositoryMock() *ShowRepositoryMock {
	return &ShowRepositoryMock{}
}

func (m *ShowRepositoryMock) List(ctx context.Context) ([]*model.Show, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) ListByStatus(ctx context.Context, status model.ShowStatus) ([]*model.Show, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*model.Show, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) Update(ctx context.Context, id uuid.UUID, params model.UpdateShowParams) (*model.Show, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) Upsert(ctx context.Context, tx pgx.Tx, show *model.Show) (*model.Show, error) {
	args := m.Called(ctx, tx, show)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowRepositoryMock) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *ShowRepositoryMock) IncrementTicketsSold(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, tx, id, quantity)
	return args.Error(0)
}
