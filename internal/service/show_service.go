package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"runway-tickets/internal/cache"
	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowService interface {
	// 後台：全部秀展，依 event_date 由新到舊
	ListAll(ctx context.Context) ([]*model.Show, error)
	// 公開：只列出 published，附帶票種與最低票價
	ListPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, error)
	Create(ctx context.Context, input model.ShowInput) (*model.ShowWithTicketTypes, error)
	Update(ctx context.Context, input model.ShowInput) (*model.Show, error)
	Delete(ctx context.Context, id string) error
}

type ShowServiceImpl struct {
	db                   TxBeginner
	repository           repository.ShowRepository
	ticketTypeRepository repository.TicketTypeRepository
	cache                cache.ShowCache
}

func NewShowService(
	db TxBeginner,
	showRepository repository.ShowRepository,
	ticketTypeRepository repository.TicketTypeRepository,
	showCache cache.ShowCache,
) ShowService {
	return &ShowServiceImpl{
		db:                   db,
		repository:           showRepository,
		ticketTypeRepository: ticketTypeRepository,
		cache:                showCache,
	}
}

func (s *ShowServiceImpl) ListAll(ctx context.Context) ([]*model.Show, error) {
	return s.repository.List(ctx)
}

func (s *ShowServiceImpl) ListPublished(ctx context.Context) ([]*model.ShowWithTicketTypes, error) {
	log := logger.WithComponent("service").With(zap.String("operation", "ListPublished"))

	cached, ok, err := s.cache.GetPublished(ctx)
	if err != nil {
		// 快取壞掉不影響查詢
		log.Warn("read show cache failed", zap.Error(err))
	} else if ok {
		return cached, nil
	}

	shows, err := s.repository.ListByStatus(ctx, model.ShowStatusPublished)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(shows))
	for _, show := range shows {
		ids = append(ids, show.ID)
	}
	ticketTypes, err := s.ticketTypeRepository.ListByShowIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*model.ShowWithTicketTypes, 0, len(shows))
	for _, show := range shows {
		result = append(result, model.NewShowWithTicketTypes(show, ticketTypes[show.ID]))
	}

	if err := s.cache.SetPublished(ctx, result); err != nil {
		log.Warn("write show cache failed", zap.Error(err))
	}
	return result, nil
}

// Create slug 由標題產生；同 slug 已存在時覆寫該秀展，同名票種一併更新
func (s *ShowServiceImpl) Create(ctx context.Context, input model.ShowInput) (*model.ShowWithTicketTypes, error) {
	show, err := newShowFromInput(input)
	if err != nil {
		return nil, err
	}

	ticketTypes := make([]*model.TicketType, 0, len(input.TicketTypesData))
	for _, data := range input.TicketTypesData {
		tt, err := newTicketTypeFromInput(data)
		if err != nil {
			return nil, err
		}
		ticketTypes = append(ticketTypes, tt)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved, err := s.repository.Upsert(ctx, tx, show)
	if err != nil {
		return nil, err
	}

	created := make([]*model.TicketType, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		tt.ShowID = saved.ID
		createdType, err := s.ticketTypeRepository.Upsert(ctx, tx, tt)
		if err != nil {
			return nil, err
		}
		created = append(created, createdType)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.invalidate(ctx, "Create")
	return model.NewShowWithTicketTypes(saved, created), nil
}

func (s *ShowServiceImpl) Update(ctx context.Context, input model.ShowInput) (*model.Show, error) {
	if input.ID == "" {
		return nil, apperrors.ErrShowIDRequired
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	params, err := updateShowParamsFromInput(input)
	if err != nil {
		return nil, err
	}

	show, err := s.repository.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, "Update")
	return show, nil
}

// Delete 先刪票種再刪秀展，同一個交易
func (s *ShowServiceImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.ErrShowIDRequired
	}
	showID, err := parseID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.ticketTypeRepository.DeleteByShowID(ctx, tx, showID); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, tx, showID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, "Delete")
	return nil
}

func (s *ShowServiceImpl) invalidate(ctx context.Context, operation string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.WithComponent("service").Warn("invalidate show cache failed",
			zap.String("operation", operation), zap.Error(err))
	}
}

func newShowFromInput(input model.ShowInput) (*model.Show, error) {
	if isBlank(input.Title) || isBlank(input.City) || isBlank(input.Country) || isBlank(input.EventDate) {
		return nil, apperrors.ErrMissingFields
	}

	eventDate, err := model.ParseEventTime(*input.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%w: eventDate: %v", apperrors.ErrInvalidInput, err)
	}

	show := &model.Show{
		Title:          *input.Title,
		Slug:           model.Slugify(*input.Title),
		Description:    input.Description,
		ShowType:       model.ShowTypeFashion,
		VenueAddress:   input.VenueAddress,
		City:           *input.City,
		Country:        *input.Country,
		EventDate:      eventDate,
		Timezone:       model.DefaultTimezone,
		CoverImageURL:  input.CoverImageURL,
		PromoVideoURL:  input.PromoVideoURL,
		IsTicketed:     true,
		LiveStreamURL:  input.LiveStreamURL,
		StreamPlatform: input.StreamPlatform,
		Status:         model.ShowStatusDraft,
	}

	if input.ShowType != nil {
		if !input.ShowType.IsValid() {
			return nil, fmt.Errorf("%w: showType %q", apperrors.ErrInvalidInput, *input.ShowType)
		}
		show.ShowType = *input.ShowType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: status %q", apperrors.ErrInvalidInput, *input.Status)
		}
		show.Status = *input.Status
	}
	if input.VenueName != nil {
		show.VenueName = *input.VenueName
	}
	if !isBlank(input.Slug) {
		show.Slug = strings.TrimSpace(*input.Slug)
	}
	if !isBlank(input.Timezone) {
		show.Timezone = *input.Timezone
	}
	if show.DoorsOpen, err = parseOptionalTime("doorsOpen", input.DoorsOpen); err != nil {
		return nil, err
	}
	if show.ShowStart, err = parseOptionalTime("showStart", input.ShowStart); err != nil {
		return nil, err
	}
	if input.GalleryURLs != nil {
		show.GalleryURLs = *input.GalleryURLs
	}
	if input.Designers != nil {
		show.Designers = *input.Designers
	}
	if input.Sponsors != nil {
		show.Sponsors = *input.Sponsors
	}
	if input.IsTicketed != nil {
		show.IsTicketed = *input.IsTicketed
	}
	if input.IsLiveNow != nil {
		show.IsLiveNow = *input.IsLiveNow
	}
	if input.IsFeatured != nil {
		show.IsFeatured = *input.IsFeatured
	}
	return show, nil
}

// updateShowParamsFromInput 只有明確帶 slug 才修改，改標題不會重新產生
func updateShowParamsFromInput(input model.ShowInput) (model.UpdateShowParams, error) {
	params := model.UpdateShowParams{
		Title:          input.Title,
		Description:    input.Description,
		VenueName:      input.VenueName,
		VenueAddress:   input.VenueAddress,
		City:           input.City,
		Country:        input.Country,
		Timezone:       input.Timezone,
		CoverImageURL:  input.CoverImageURL,
		GalleryURLs:    input.GalleryURLs,
		PromoVideoURL:  input.PromoVideoURL,
		IsTicketed:     input.IsTicketed,
		LiveStreamURL:  input.LiveStreamURL,
		StreamPlatform: input.StreamPlatform,
		IsLiveNow:      input.IsLiveNow,
		Designers:      input.Designers,
		Sponsors:       input.Sponsors,
		IsFeatured:     input.IsFeatured,
	}

	if !isBlank(input.Slug) {
		slug := strings.TrimSpace(*input.Slug)
		params.Slug = &slug
	}
	if input.ShowType != nil {
		if !input.ShowType.IsValid() {
			return params, fmt.Errorf("%w: showType %q", apperrors.ErrInvalidInput, *input.ShowType)
		}
		params.ShowType = input.ShowType
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return params, fmt.Errorf("%w: status %q", apperrors.ErrInvalidInput, *input.Status)
		}
		params.Status = input.Status
	}

	var err error
	if params.EventDate, err = parseOptionalTime("eventDate", input.EventDate); err != nil {
		return params, err
	}
	if params.DoorsOpen, err = parseOptionalTime("doorsOpen", input.DoorsOpen); err != nil {
		return params, err
	}
	if params.ShowStart, err = parseOptionalTime("showStart", input.ShowStart); err != nil {
		return params, err
	}
	return params, nil
}

func parseOptionalTime(field string, value *string) (*time.Time, error) {
	if isBlank(value) {
		return nil, nil
	}
	t, err := model.ParseEventTime(*value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidInput, field, err)
	}
	return &t, nil
}
