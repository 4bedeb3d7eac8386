package services

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type VideoServiceMock struct {
	mock.Mock
}

func NewVideoServiceMock() *VideoServiceMock {
	return &VideoServiceMock{}
}

func (m *VideoServiceMock) List(ctx context.Context) ([]*model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

type StatsServiceMock struct {
	mock.Mock
}

func NewStatsServiceMock() *StatsServiceMock {
	return &StatsServiceMock{}
}

func (m *StatsServiceMock) GetAdminStats(ctx context.Context) (*model.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminStats), args.Error(1)
}
