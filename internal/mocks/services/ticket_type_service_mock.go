package services

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type TicketTypeServiceMock struct {
	mock.Mock
}

func NewTicketTypeServiceMock() *TicketTypeServiceMock {
	return &TicketTypeServiceMock{}
}

func (m *TicketTypeServiceMock) ListByShow(ctx context.Context, showID string) ([]*model.TicketType, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.TicketType), args.Error(1)
}

func (m *TicketTypeServiceMock) Create(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeServiceMock) Update(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TicketType), args.Error(1)
}

func (m *TicketTypeServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
