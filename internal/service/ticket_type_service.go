package service

import (
	"context"
	"fmt"

	"runway-tickets/internal/cache"
	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"go.uber.org/zap"
)

type TicketTypeService interface {
	ListByShow(ctx context.Context, showID string) ([]*model.TicketType, error)
	Create(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error)
	Update(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error)
	Delete(ctx context.Context, id string) error
}

type TicketTypeServiceImpl struct {
	repository     repository.TicketTypeRepository
	showRepository repository.ShowRepository
	cache          cache.ShowCache
}

func NewTicketTypeService(
	ticketTypeRepository repository.TicketTypeRepository,
	showRepository repository.ShowRepository,
	showCache cache.ShowCache,
) TicketTypeService {
	return &TicketTypeServiceImpl{
		repository:     ticketTypeRepository,
		showRepository: showRepository,
		cache:          showCache,
	}
}

func (s *TicketTypeServiceImpl) ListByShow(ctx context.Context, showID string) ([]*model.TicketType, error) {
	if showID == "" {
		return nil, apperrors.ErrShowIDRequired
	}
	id, err := parseID(showID)
	if err != nil {
		return nil, err
	}
	return s.repository.ListByShowID(ctx, id)
}

func (s *TicketTypeServiceImpl) Create(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error) {
	if input.ShowID == "" {
		return nil, apperrors.ErrShowIDRequired
	}
	showID, err := parseID(input.ShowID)
	if err != nil {
		return nil, err
	}

	tt, err := newTicketTypeFromInput(input)
	if err != nil {
		return nil, err
	}

	// 確認秀展存在
	if _, err := s.showRepository.FindByID(ctx, showID); err != nil {
		return nil, err
	}
	tt.ShowID = showID

	created, err := s.repository.Create(ctx, tt)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "CreateTicketType")
	return created, nil
}

func (s *TicketTypeServiceImpl) Update(ctx context.Context, input model.TicketTypeInput) (*model.TicketType, error) {
	if input.ID == "" {
		return nil, apperrors.ErrTicketTypeIDRequired
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}
	if input.PriceUsd != nil && *input.PriceUsd < 0 {
		return nil, fmt.Errorf("%w: priceUsd must not be negative", apperrors.ErrInvalidInput)
	}
	if input.Name != nil && isBlank(input.Name) {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrInvalidInput)
	}
	if input.TotalQuantity != nil && *input.TotalQuantity < 0 {
		return nil, fmt.Errorf("%w: totalQuantity must not be negative", apperrors.ErrInvalidInput)
	}
	if input.ClearTotalQuantity && input.TotalQuantity != nil {
		return nil, fmt.Errorf("%w: totalQuantity and clearTotalQuantity are exclusive", apperrors.ErrInvalidInput)
	}

	updated, err := s.repository.Update(ctx, id, model.UpdateTicketTypeParams{
		Name:               input.Name,
		Description:        input.Description,
		PriceUsd:           input.PriceUsd,
		TotalQuantity:      input.TotalQuantity,
		ClearTotalQuantity: input.ClearTotalQuantity,
		Features:           input.Features,
		StripePriceID:      input.StripePriceID,
		IsFeatured:         input.IsFeatured,
		SortOrder:          input.SortOrder,
		IsActive:           input.IsActive,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "UpdateTicketType")
	return updated, nil
}

func (s *TicketTypeServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrTicketTypeIDRequired
	}
	ticketTypeID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, ticketTypeID); err != nil {
		return err
	}

	s.invalidate(ctx, "DeleteTicketType")
	return nil
}

func (s *TicketTypeServiceImpl) invalidate(ctx context.Context, operation string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithComponent("service").Warn("invalidate show cache failed",
			zap.String("operation", operation), zap.Error(err))
	}
}

// newTicketTypeFromInput name 與 priceUsd 必填，價格不可為負
func newTicketTypeFromInput(input model.TicketTypeInput) (*model.TicketType, error) {
	if isBlank(input.Name) || input.PriceUsd == nil {
		return nil, apperrors.ErrMissingFields
	}
	if *input.PriceUsd < 0 {
		return nil, fmt.Errorf("%w: priceUsd must not be negative", apperrors.ErrInvalidInput)
	}
	if input.TotalQuantity != nil && *input.TotalQuantity < 0 {
		return nil, fmt.Errorf("%w: totalQuantity must not be negative", apperrors.ErrInvalidInput)
	}

	tt := &model.TicketType{
		Name:          *input.Name,
		Description:   input.Description,
		PriceUsd:      *input.PriceUsd,
		TotalQuantity: input.TotalQuantity,
		StripePriceID: input.StripePriceID,
		IsActive:      true,
	}
	if input.Features != nil {
		tt.Features = *input.Features
	}
	if input.IsFeatured != nil {
		tt.IsFeatured = *input.IsFeatured
	}
	if input.SortOrder != nil {
		tt.SortOrder = *input.SortOrder
	}
	if input.IsActive != nil {
		tt.IsActive = *input.IsActive
	}
	return tt, nil
}
