package service

import (
	"context"
	"testing"

	repoMocks "runway-tickets/internal/mocks/repositories"
	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTicketTypeService() (TicketTypeService, *repoMocks.TicketTypeRepositoryMock, *repoMocks.ShowRepositoryMock, *memoryShowCache) {
	ttRepo := repoMocks.NewTicketTypeRepositoryMock()
	showRepo := repoMocks.NewShowRepositoryMock()
	cache := &memoryShowCache{}
	return NewTicketTypeService(ttRepo, showRepo, cache), ttRepo, showRepo, cache
}

func TestTicketTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, ttRepo, showRepo, cache := setupTicketTypeService()
		showID := uuid.New()
		showRepo.On("FindByID", ctx, showID).Return(&model.Show{ID: showID}, nil).Once()
		ttRepo.On("Create", ctx, mock.MatchedBy(func(tt *model.TicketType) bool {
			return tt.ShowID == showID && tt.PriceUsd == 0 && tt.IsActive
		})).Return(&model.TicketType{ID: uuid.New(), ShowID: showID, Name: "Press"}, nil).Once()

		tt, err := svc.Create(ctx, model.TicketTypeInput{ShowID: showID.String(), Name: strPtr("Press"), PriceUsd: int64Ptr(0)})

		require.NoError(t, err)
		assert.Equal(t, "Press", tt.Name)
		assert.Equal(t, 1, cache.invalidated)
		ttRepo.AssertExpectations(t)
	})

	t.Run("Failed - negative price", func(t *testing.T) {
		svc, ttRepo, _, _ := setupTicketTypeService()

		_, err := svc.Create(ctx, model.TicketTypeInput{ShowID: uuid.NewString(), Name: strPtr("GA"), PriceUsd: int64Ptr(-100)})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		ttRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failed - show required", func(t *testing.T) {
		svc, _, _, _ := setupTicketTypeService()

		_, err := svc.Create(ctx, model.TicketTypeInput{Name: strPtr("GA"), PriceUsd: int64Ptr(100)})

		assert.ErrorIs(t, err, apperrors.ErrShowIDRequired)
	})

	t.Run("Failed - show not found", func(t *testing.T) {
		svc, ttRepo, showRepo, _ := setupTicketTypeService()
		showID := uuid.New()
		showRepo.On("FindByID", ctx, showID).Return(nil, apperrors.ErrShowNotFound).Once()

		_, err := svc.Create(ctx, model.TicketTypeInput{ShowID: showID.String(), Name: strPtr("GA"), PriceUsd: int64Ptr(100)})

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
		ttRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTicketTypeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, ttRepo, _, _ := setupTicketTypeService()
		id := uuid.New()
		ttRepo.On("Update", ctx, id, mock.MatchedBy(func(p model.UpdateTicketTypeParams) bool {
			return *p.PriceUsd == 9000 && p.Name == nil
		})).Return(&model.TicketType{ID: id, PriceUsd: 9000}, nil).Once()

		tt, err := svc.Update(ctx, model.TicketTypeInput{ID: id.String(), PriceUsd: int64Ptr(9000)})

		require.NoError(t, err)
		assert.Equal(t, int64(9000), tt.PriceUsd)
	})

	t.Run("Success - clear total quantity", func(t *testing.T) {
		svc, ttRepo, _, cache := setupTicketTypeService()
		id := uuid.New()
		ttRepo.On("Update", ctx, id, mock.MatchedBy(func(p model.UpdateTicketTypeParams) bool {
			return p.ClearTotalQuantity && p.TotalQuantity == nil
		})).Return(&model.TicketType{ID: id, SoldCount: 40}, nil).Once()

		tt, err := svc.Update(ctx, model.TicketTypeInput{ID: id.String(), ClearTotalQuantity: true})

		require.NoError(t, err)
		assert.True(t, tt.IsUnlimited())
		assert.Equal(t, 1, cache.invalidated)
		ttRepo.AssertExpectations(t)
	})

	t.Run("Failed - clear and set total quantity together", func(t *testing.T) {
		svc, ttRepo, _, _ := setupTicketTypeService()
		total := 100

		_, err := svc.Update(ctx, model.TicketTypeInput{ID: uuid.NewString(), TotalQuantity: &total, ClearTotalQuantity: true})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		ttRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - id required", func(t *testing.T) {
		svc, _, _, _ := setupTicketTypeService()

		_, err := svc.Update(ctx, model.TicketTypeInput{PriceUsd: int64Ptr(9000)})

		assert.ErrorIs(t, err, apperrors.ErrTicketTypeIDRequired)
	})

	t.Run("Failed - negative price", func(t *testing.T) {
		svc, _, _, _ := setupTicketTypeService()

		_, err := svc.Update(ctx, model.TicketTypeInput{ID: uuid.NewString(), PriceUsd: int64Ptr(-1)})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestTicketTypeService_ListAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("List requires show id", func(t *testing.T) {
		svc, _, _, _ := setupTicketTypeService()

		_, err := svc.ListByShow(ctx, "")

		assert.ErrorIs(t, err, apperrors.ErrShowIDRequired)
	})

	t.Run("List by show", func(t *testing.T) {
		svc, ttRepo, _, _ := setupTicketTypeService()
		showID := uuid.New()
		ttRepo.On("ListByShowID", ctx, showID).Return([]*model.TicketType{{Name: "GA"}}, nil).Once()

		list, err := svc.ListByShow(ctx, showID.String())

		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Delete in use", func(t *testing.T) {
		svc, ttRepo, _, cache := setupTicketTypeService()
		id := uuid.New()
		ttRepo.On("Delete", ctx, id).Return(apperrors.ErrTicketTypeInUse).Once()

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, apperrors.ErrTicketTypeInUse)
		assert.Zero(t, cache.invalidated)
	})
}
