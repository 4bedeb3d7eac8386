package model

import (
	"time"

	"github.com/google/uuid"
)

// ShowType 秀展類別
type ShowType string

const (
	ShowTypeFashion      ShowType = "fashion"
	ShowTypeSwimwear     ShowType = "swimwear"
	ShowTypeResortwear   ShowType = "resortwear"
	ShowTypeHauteCouture ShowType = "haute_couture"
	ShowTypeReadyToWear  ShowType = "ready_to_wear"
	ShowTypeAccessories  ShowType = "accessories"
	ShowTypeSpecialEvent ShowType = "special_event"
)

func (t ShowType) IsValid() bool {
	switch t {
	case ShowTypeFashion, ShowTypeSwimwear, ShowTypeResortwear, ShowTypeHauteCouture,
		ShowTypeReadyToWear, ShowTypeAccessories, ShowTypeSpecialEvent:
		return true
	}
	return false
}

// ShowStatus 秀展狀態。狀態之間可任意切換，不做轉換檢查。
type ShowStatus string

const (
	ShowStatusDraft     ShowStatus = "draft"
	ShowStatusPublished ShowStatus = "published"
	ShowStatusLive      ShowStatus = "live"
	ShowStatusCompleted ShowStatus = "completed"
	ShowStatusCancelled ShowStatus = "cancelled"
)

func (s ShowStatus) IsValid() bool {
	switch s {
	case ShowStatusDraft, ShowStatusPublished, ShowStatusLive, ShowStatusCompleted, ShowStatusCancelled:
		return true
	}
	return false
}

const DefaultTimezone = "America/New_York"

// Show 秀展模型
type Show struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Title            string     `json:"title" db:"title"`
	Slug             string     `json:"slug" db:"slug"`
	Description      *string    `json:"description" db:"description"`
	ShowType         ShowType   `json:"showType" db:"show_type"`
	VenueName        string     `json:"venueName" db:"venue_name"`
	VenueAddress     *string    `json:"venueAddress" db:"venue_address"`
	City             string     `json:"city" db:"city"`
	Country          string     `json:"country" db:"country"`
	EventDate        time.Time  `json:"eventDate" db:"event_date"`
	DoorsOpen        *time.Time `json:"doorsOpen" db:"doors_open"`
	ShowStart        *time.Time `json:"showStart" db:"show_start"`
	Timezone         string     `json:"timezone" db:"timezone"`
	CoverImageURL    *string    `json:"coverImageUrl" db:"cover_image_url"`
	GalleryURLs      []string   `json:"galleryUrls" db:"gallery_urls"`
	PromoVideoURL    *string    `json:"promoVideoUrl" db:"promo_video_url"`
	IsTicketed       bool       `json:"isTicketed" db:"is_ticketed"`
	TicketsSoldCount int        `json:"ticketsSoldCount" db:"tickets_sold_count"`
	LiveStreamURL    *string    `json:"liveStreamUrl" db:"live_stream_url"`
	StreamPlatform   *string    `json:"streamPlatform" db:"stream_platform"`
	IsLiveNow        bool       `json:"isLiveNow" db:"is_live_now"`
	Designers        []string   `json:"designers" db:"designers"`
	Sponsors         []string   `json:"sponsors" db:"sponsors"`
	Status           ShowStatus `json:"status" db:"status"`
	IsFeatured       bool       `json:"isFeatured" db:"is_featured"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" db:"updated_at"`
}

// UpdateShowParams nil 欄位代表不更新
type UpdateShowParams struct {
	Title          *string
	Slug           *string
	Description    *string
	ShowType       *ShowType
	VenueName      *string
	VenueAddress   *string
	City           *string
	Country        *string
	EventDate      *time.Time
	DoorsOpen      *time.Time
	ShowStart      *time.Time
	Timezone       *string
	CoverImageURL  *string
	GalleryURLs    *[]string
	PromoVideoURL  *string
	IsTicketed     *bool
	LiveStreamURL  *string
	StreamPlatform *string
	IsLiveNow      *bool
	Designers      *[]string
	Sponsors       *[]string
	Status         *ShowStatus
	IsFeatured     *bool
}

// ShowWithTicketTypes 附帶票種與最低票價，公開列表與後台新增共用
type ShowWithTicketTypes struct {
	Show
	TicketTypes []*TicketType `json:"ticketTypes"`
	MinPrice    *int64        `json:"minPrice"`
}

// NewShowWithTicketTypes 計算最低票價；沒有票種時 MinPrice 為 nil
func NewShowWithTicketTypes(show *Show, ticketTypes []*TicketType) *ShowWithTicketTypes {
	if ticketTypes == nil {
		ticketTypes = make([]*TicketType, 0)
	}
	ps := &ShowWithTicketTypes{Show: *show, TicketTypes: ticketTypes}
	for _, tt := range ticketTypes {
		if ps.MinPrice == nil || tt.PriceUsd < *ps.MinPrice {
			price := tt.PriceUsd
			ps.MinPrice = &price
		}
	}
	return ps
}
