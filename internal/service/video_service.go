package service

import (
	"context"

	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"
)

type VideoService interface {
	List(ctx context.Context) ([]*model.Video, error)
}

type VideoServiceImpl struct {
	repository repository.VideoRepository
}

func NewVideoService(videoRepository repository.VideoRepository) VideoService {
	return &VideoServiceImpl{repository: videoRepository}
}

func (s *VideoServiceImpl) List(ctx context.Context) ([]*model.Video, error) {
	return s.repository.List(ctx)
}
