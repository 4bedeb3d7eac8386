package services

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type ShowServiceMock struct {
	mock.Mock
}

func NewShowServiceMock() *ShowServiceMock {
	return &ShowServiceMock{}
}

func (m *ShowServiceMock) ListAll(ctx context.Context) ([]*model.Show, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Show), args.Error(1)
}

func (m *ShowServiceMock) ListPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ShowWithTicketTypes), args.Error(1)
}

func (m *ShowServiceMock) Create(ctx context.Context, input model.ShowInput) (*model.ShowWithTicketTypes, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShowWithTicketTypes), args.Error(1)
}

func (m *ShowServiceMock) Update(ctx context.Context, input model.ShowInput) (*model.Show, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Show), args.Error(1)
}

func (m *ShowServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
