package repositories

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type VideoRepositoryMock struct {
	mock.Mock
}

func NewVideoRepositoryMock() *VideoRepositoryMock {
	return &VideoRepositoryMock{}
}

func (m *VideoRepositoryMock) List(ctx context.Context) ([]*model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Video), args.Error(1)
}

func (m *VideoRepositoryMock) Upsert(ctx context.Context, video *model.Video) (*model.Video, error) {
	args := m.Called(ctx, video)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}
