package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"runway-tickets/internal/cache"
	"runway-tickets/internal/model"
	"runway-tickets/internal/repository"
	"runway-tickets/internal/service"
	"runway-tickets/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/shows.yaml
var defaultShows []byte

//go:embed data/videos.yaml
var defaultVideos []byte

type TicketTypeSeed struct {
	Name          string  `yaml:"name"`
	Description   *string `yaml:"description"`
	PriceUsd      int64   `yaml:"priceUsd"`
	TotalQuantity *int    `yaml:"totalQuantity"`
	SortOrder     int     `yaml:"sortOrder"`
}

type ShowSeed struct {
	Title        string           `yaml:"title"`
	Slug         string           `yaml:"slug"`
	Description  *string          `yaml:"description"`
	ShowType     model.ShowType   `yaml:"showType"`
	VenueName    string           `yaml:"venueName"`
	VenueAddress *string          `yaml:"venueAddress"`
	City         string           `yaml:"city"`
	Country      string           `yaml:"country"`
	EventDate    string           `yaml:"eventDate"`
	DoorsOpen    string           `yaml:"doorsOpen"`
	ShowStart    string           `yaml:"showStart"`
	Timezone     string           `yaml:"timezone"`
	Status       model.ShowStatus `yaml:"status"`
	IsFeatured   bool             `yaml:"isFeatured"`
	TicketTypes  []TicketTypeSeed `yaml:"ticketTypes"`
}

type showsFile struct {
	Shows []ShowSeed `yaml:"shows"`
}

type videosFile struct {
	Videos []*model.Video `yaml:"videos"`
}

// ReadFile 空路徑回傳內嵌的預設資料
func ReadFile(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return data, nil
}

func DefaultShows() []byte  { return defaultShows }
func DefaultVideos() []byte { return defaultVideos }

func ParseShows(data []byte) ([]ShowSeed, error) {
	var file showsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse shows seed: %w", err)
	}
	return file.Shows, nil
}

func ParseVideos(data []byte) ([]*model.Video, error) {
	var file videosFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse videos seed: %w", err)
	}
	for i, v := range file.Videos {
		if v.YoutubeID == "" || v.Title == "" {
			return nil, fmt.Errorf("video #%d: youtubeId and title are required", i+1)
		}
	}
	return file.Videos, nil
}

// ToShow 套用與後台新增相同的預設值
func (s ShowSeed) ToShow() (*model.Show, error) {
	if s.Title == "" || s.City == "" || s.Country == "" || s.EventDate == "" {
		return nil, fmt.Errorf("show %q: title, city, country and eventDate are required", s.Title)
	}

	eventDate, err := model.ParseEventTime(s.EventDate)
	if err != nil {
		return nil, fmt.Errorf("show %q: %w", s.Title, err)
	}
	doorsOpen, err := optionalTime(s.DoorsOpen)
	if err != nil {
		return nil, fmt.Errorf("show %q: %w", s.Title, err)
	}
	showStart, err := optionalTime(s.ShowStart)
	if err != nil {
		return nil, fmt.Errorf("show %q: %w", s.Title, err)
	}

	show := &model.Show{
		Title:        s.Title,
		Slug:         s.Slug,
		Description:  s.Description,
		ShowType:     s.ShowType,
		VenueName:    s.VenueName,
		VenueAddress: s.VenueAddress,
		City:         s.City,
		Country:      s.Country,
		EventDate:    eventDate,
		DoorsOpen:    doorsOpen,
		ShowStart:    showStart,
		Timezone:     s.Timezone,
		Status:       s.Status,
		IsTicketed:   true,
		IsFeatured:   s.IsFeatured,
	}
	if show.Slug == "" {
		show.Slug = model.Slugify(s.Title)
	}
	if show.ShowType == "" {
		show.ShowType = model.ShowTypeFashion
	}
	if show.Status == "" {
		show.Status = model.ShowStatusDraft
	}
	if show.Timezone == "" {
		show.Timezone = model.DefaultTimezone
	}
	if !show.ShowType.IsValid() || !show.Status.IsValid() {
		return nil, fmt.Errorf("show %q: invalid showType or status", s.Title)
	}
	return show, nil
}

func optionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := model.ParseEventTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type Seeder struct {
	db                   service.TxBeginner
	showRepository       repository.ShowRepository
	ticketTypeRepository repository.TicketTypeRepository
	videoRepository      repository.VideoRepository
	showCache            cache.ShowCache
}

func NewSeeder(
	db service.TxBeginner,
	showRepository repository.ShowRepository,
	ticketTypeRepository repository.TicketTypeRepository,
	videoRepository repository.VideoRepository,
	showCache cache.ShowCache,
) *Seeder {
	return &Seeder{
		db:                   db,
		showRepository:       showRepository,
		ticketTypeRepository: ticketTypeRepository,
		videoRepository:      videoRepository,
		showCache:            showCache,
	}
}

// SeedShows 每個秀展各自一個 transaction，單筆失敗不影響其他筆
func (s *Seeder) SeedShows(ctx context.Context, seeds []ShowSeed) (int, error) {
	log := logger.WithComponent("seed")

	var errs []error
	seeded := 0
	for _, seed := range seeds {
		if err := s.seedShow(ctx, seed); err != nil {
			log.Error("seed show failed", zap.String("title", seed.Title), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		seeded++
		log.Info("seeded show", zap.String("title", seed.Title), zap.Int("ticket_types", len(seed.TicketTypes)))
	}

	if seeded > 0 {
		if err := s.showCache.Invalidate(ctx); err != nil {
			log.Warn("invalidate show cache failed", zap.Error(err))
		}
	}
	return seeded, errors.Join(errs...)
}

func (s *Seeder) seedShow(ctx context.Context, seed ShowSeed) error {
	show, err := seed.ToShow()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	saved, err := s.showRepository.Upsert(ctx, tx, show)
	if err != nil {
		return err
	}
	for i, t := range seed.TicketTypes {
		sortOrder := t.SortOrder
		if sortOrder == 0 {
			sortOrder = i
		}
		if _, err := s.ticketTypeRepository.Upsert(ctx, tx, &model.TicketType{
			ShowID:        saved.ID,
			Name:          t.Name,
			Description:   t.Description,
			PriceUsd:      t.PriceUsd,
			TotalQuantity: t.TotalQuantity,
			SortOrder:     sortOrder,
			IsActive:      true,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Seeder) SeedVideos(ctx context.Context, videos []*model.Video) (int, error) {
	log := logger.WithComponent("seed")

	var errs []error
	seeded := 0
	for _, video := range videos {
		if _, err := s.videoRepository.Upsert(ctx, video); err != nil {
			log.Error("seed video failed", zap.String("title", video.Title), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		seeded++
		log.Info("seeded video", zap.String("youtube_id", video.YoutubeID))
	}
	return seeded, errors.Join(errs...)
}
