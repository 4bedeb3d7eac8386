package repositories

import (
	"context"

	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"

	"github.com/stretchr/testify/mock"
)

type StatsRepositoryMock struct {
	mock.Mock
}

func NewStatsRepositoryMock() *StatsRepositoryMock {
	return &StatsRepositoryMock{}
}

func (m *StatsRepositoryMock) Totals(ctx context.Context) (*repository.Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Totals), args.Error(1)
}

func (m *StatsRepositoryMock) RecentShows(ctx context.Context, limit int) ([]*model.RecentShow, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RecentShow), args.Error(1)
}
