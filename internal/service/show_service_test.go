package service

import (
	"context"
	"errors"
	"testing"

	repoMocks "runway-tickets/internal/mocks/repositories"
	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryShowCache struct {
	shows       []*model.ShowWithTicketTypes
	ok          bool
	invalidated int
}

func (c *memoryShowCache) GetPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, bool, error) {
	return c.shows, c.ok, nil
}

func (c *memoryShowCache) SetPublished(ctx context.Context, shows []*model.ShowWithTicketTypes) error {
	c.shows, c.ok = shows, true
	return nil
}

func (c *memoryShowCache) Invalidate(ctx context.Context) error {
	c.shows, c.ok = nil, false
	c.invalidated++
	return nil
}

func setupShowService() (ShowService, *repoMocks.FakeDB, *repoMocks.ShowRepositoryMock, *repoMocks.TicketTypeRepositoryMock, *memoryShowCache) {
	db := repoMocks.NewFakeDB()
	showRepo := repoMocks.NewShowRepositoryMock()
	ttRepo := repoMocks.NewTicketTypeRepositoryMock()
	cache := &memoryShowCache{}
	return NewShowService(db, showRepo, ttRepo, cache), db, showRepo, ttRepo, cache
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestShowService_ListPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, showRepo, ttRepo, cache := setupShowService()
		withTickets := &model.Show{ID: uuid.New(), Title: "Miami Swim Week 2025", Status: model.ShowStatusPublished}
		withoutTickets := &model.Show{ID: uuid.New(), Title: "Art Basel Fashion Night", Status: model.ShowStatusPublished}

		showRepo.On("ListByStatus", ctx, model.ShowStatusPublished).Return([]*model.Show{withTickets, withoutTickets}, nil).Once()
		ttRepo.On("ListByShowIDs", ctx, []uuid.UUID{withTickets.ID, withoutTickets.ID}).Return(map[uuid.UUID][]*model.TicketType{
			withTickets.ID: {
				{Name: "General Admission", PriceUsd: 7500},
				{Name: "VIP Front Row", PriceUsd: 25000},
			},
		}, nil).Once()

		shows, err := svc.ListPublished(ctx)

		require.NoError(t, err)
		require.Len(t, shows, 2)
		require.NotNil(t, shows[0].MinPrice)
		assert.Equal(t, int64(7500), *shows[0].MinPrice)
		assert.Len(t, shows[0].TicketTypes, 2)
		assert.Nil(t, shows[1].MinPrice)
		assert.Empty(t, shows[1].TicketTypes)
		assert.True(t, cache.ok)
		showRepo.AssertExpectations(t)
		ttRepo.AssertExpectations(t)
	})

	t.Run("Success - served from cache", func(t *testing.T) {
		svc, _, showRepo, _, cache := setupShowService()
		cache.shows = []*model.ShowWithTicketTypes{{Show: model.Show{Title: "Cached"}}}
		cache.ok = true

		shows, err := svc.ListPublished(ctx)

		require.NoError(t, err)
		require.Len(t, shows, 1)
		assert.Equal(t, "Cached", shows[0].Title)
		showRepo.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything)
	})
}

func TestShowService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, db, showRepo, ttRepo, cache := setupShowService()
		showID := uuid.New()

		showRepo.On("Upsert", ctx, db.Tx, mock.MatchedBy(func(show *model.Show) bool {
			return show.Slug == "test-show" &&
				show.ShowType == model.ShowTypeFashion &&
				show.Status == model.ShowStatusDraft &&
				show.Timezone == "America/New_York" &&
				show.EventDate.Format("2006-01-02") == "2025-07-15"
		})).Return(&model.Show{ID: showID, Title: "Test Show", Slug: "test-show"}, nil).Once()
		ttRepo.On("Upsert", ctx, db.Tx, mock.MatchedBy(func(tt *model.TicketType) bool {
			return tt.ShowID == showID && tt.Name == "General Admission" && tt.IsActive
		})).Return(&model.TicketType{ID: uuid.New(), ShowID: showID, Name: "General Admission", PriceUsd: 7500}, nil).Once()

		created, err := svc.Create(ctx, model.ShowInput{
			Title:     strPtr("Test Show"),
			City:      strPtr("Miami"),
			Country:   strPtr("USA"),
			EventDate: strPtr("2025-07-15T20:00:00Z"),
			TicketTypesData: []model.TicketTypeInput{
				{Name: strPtr("General Admission"), PriceUsd: int64Ptr(7500)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "test-show", created.Slug)
		require.NotNil(t, created.MinPrice)
		assert.Equal(t, int64(7500), *created.MinPrice)
		assert.True(t, db.Tx.Committed)
		assert.Equal(t, 1, cache.invalidated)
		showRepo.AssertExpectations(t)
		ttRepo.AssertExpectations(t)
	})

	t.Run("Success - explicit slug", func(t *testing.T) {
		svc, db, showRepo, _, _ := setupShowService()

		showRepo.On("Upsert", ctx, db.Tx, mock.MatchedBy(func(show *model.Show) bool {
			return show.Slug == "miami-2025" && show.Title == "Test Show"
		})).Return(&model.Show{ID: uuid.New(), Title: "Test Show", Slug: "miami-2025"}, nil).Once()

		created, err := svc.Create(ctx, model.ShowInput{
			Title:     strPtr("Test Show"),
			Slug:      strPtr(" miami-2025 "),
			City:      strPtr("Miami"),
			Country:   strPtr("USA"),
			EventDate: strPtr("2025-07-15"),
		})

		require.NoError(t, err)
		assert.Equal(t, "miami-2025", created.Slug)
		showRepo.AssertExpectations(t)
	})

	t.Run("Success - blank slug falls back to title", func(t *testing.T) {
		svc, db, showRepo, _, _ := setupShowService()

		showRepo.On("Upsert", ctx, db.Tx, mock.MatchedBy(func(show *model.Show) bool {
			return show.Slug == "miami-swim-week"
		})).Return(&model.Show{ID: uuid.New(), Slug: "miami-swim-week"}, nil).Once()

		_, err := svc.Create(ctx, model.ShowInput{
			Title:     strPtr("Miami Swim  Week"),
			Slug:      strPtr("   "),
			City:      strPtr("Miami"),
			Country:   strPtr("USA"),
			EventDate: strPtr("2025-07-15"),
		})

		require.NoError(t, err)
		showRepo.AssertExpectations(t)
	})

	t.Run("Failed - missing fields", func(t *testing.T) {
		svc, db, _, _, _ := setupShowService()

		_, err := svc.Create(ctx, model.ShowInput{Title: strPtr("Test Show"), City: strPtr("Miami")})

		assert.ErrorIs(t, err, apperrors.ErrMissingFields)
		assert.Zero(t, db.Begins)
	})

	t.Run("Failed - unknown show type", func(t *testing.T) {
		svc, _, _, _, _ := setupShowService()
		showType := model.ShowType("opera")

		_, err := svc.Create(ctx, model.ShowInput{
			Title: strPtr("Test Show"), City: strPtr("Miami"), Country: strPtr("USA"),
			EventDate: strPtr("2025-07-15"), ShowType: &showType,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Failed - negative ticket price", func(t *testing.T) {
		svc, db, _, _, _ := setupShowService()

		_, err := svc.Create(ctx, model.ShowInput{
			Title: strPtr("Test Show"), City: strPtr("Miami"), Country: strPtr("USA"),
			EventDate:       strPtr("2025-07-15"),
			TicketTypesData: []model.TicketTypeInput{{Name: strPtr("Free"), PriceUsd: int64Ptr(-1)}},
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Zero(t, db.Begins)
	})

	t.Run("Failed - ticket type upsert rolls back", func(t *testing.T) {
		svc, db, showRepo, ttRepo, cache := setupShowService()
		showRepo.On("Upsert", ctx, db.Tx, mock.Anything).Return(&model.Show{ID: uuid.New()}, nil).Once()
		ttRepo.On("Upsert", ctx, db.Tx, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := svc.Create(ctx, model.ShowInput{
			Title: strPtr("Test Show"), City: strPtr("Miami"), Country: strPtr("USA"),
			EventDate:       strPtr("2025-07-15"),
			TicketTypesData: []model.TicketTypeInput{{Name: strPtr("GA"), PriceUsd: int64Ptr(100)}},
		})

		assert.EqualError(t, err, "db down")
		assert.True(t, db.Tx.RolledBack)
		assert.Zero(t, cache.invalidated)
	})
}

func TestShowService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, _, showRepo, _, cache := setupShowService()
		id := uuid.New()
		status := model.ShowStatusPublished

		showRepo.On("Update", ctx, id, mock.MatchedBy(func(p model.UpdateShowParams) bool {
			return p.Slug == nil && *p.Title == "Renamed" && *p.Status == model.ShowStatusPublished
		})).Return(&model.Show{ID: id, Title: "Renamed", Slug: "original-title"}, nil).Once()

		show, err := svc.Update(ctx, model.ShowInput{ID: id.String(), Title: strPtr("Renamed"), Status: &status})

		require.NoError(t, err)
		assert.Equal(t, "original-title", show.Slug)
		assert.Equal(t, 1, cache.invalidated)
		showRepo.AssertExpectations(t)
	})

	t.Run("Success - explicit slug", func(t *testing.T) {
		svc, _, showRepo, _, _ := setupShowService()
		id := uuid.New()

		showRepo.On("Update", ctx, id, mock.MatchedBy(func(p model.UpdateShowParams) bool {
			return p.Slug != nil && *p.Slug == "paris-fw-2025"
		})).Return(&model.Show{ID: id, Slug: "paris-fw-2025"}, nil).Once()

		show, err := svc.Update(ctx, model.ShowInput{ID: id.String(), Slug: strPtr("paris-fw-2025")})

		require.NoError(t, err)
		assert.Equal(t, "paris-fw-2025", show.Slug)
		showRepo.AssertExpectations(t)
	})

	t.Run("Failed - id required", func(t *testing.T) {
		svc, _, _, _, _ := setupShowService()

		_, err := svc.Update(ctx, model.ShowInput{Title: strPtr("Renamed")})

		assert.ErrorIs(t, err, apperrors.ErrShowIDRequired)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		svc, _, showRepo, _, _ := setupShowService()
		id := uuid.New()
		showRepo.On("Update", ctx, id, mock.Anything).Return(nil, apperrors.ErrShowNotFound).Once()

		_, err := svc.Update(ctx, model.ShowInput{ID: id.String()})

		assert.ErrorIs(t, err, apperrors.ErrShowNotFound)
	})
}

func TestShowService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, db, showRepo, ttRepo, cache := setupShowService()
		id := uuid.New()
		ttRepo.On("DeleteByShowID", ctx, db.Tx, id).Return(nil).Once()
		showRepo.On("Delete", ctx, db.Tx, id).Return(nil).Once()

		require.NoError(t, svc.Delete(ctx, id.String()))
		assert.True(t, db.Tx.Committed)
		assert.Equal(t, 1, cache.invalidated)
		ttRepo.AssertExpectations(t)
		showRepo.AssertExpectations(t)
	})

	t.Run("Failed - id required", func(t *testing.T) {
		svc, _, _, _, _ := setupShowService()

		assert.ErrorIs(t, svc.Delete(ctx, ""), apperrors.ErrShowIDRequired)
	})

	t.Run("Failed - invalid id", func(t *testing.T) {
		svc, _, _, _, _ := setupShowService()

		assert.ErrorIs(t, svc.Delete(ctx, "not-a-uuid"), apperrors.ErrInvalidInput)
	})

	t.Run("Failed - tickets sold", func(t *testing.T) {
		svc, db, showRepo, ttRepo, _ := setupShowService()
		id := uuid.New()
		ttRepo.On("DeleteByShowID", ctx, db.Tx, id).Return(apperrors.ErrTicketTypeInUse).Once()

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, apperrors.ErrTicketTypeInUse)
		assert.True(t, db.Tx.RolledBack)
		showRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
