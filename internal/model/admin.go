package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ShowInput 後台新增 / 修改秀展的請求內容。Update 時 nil 代表不修改。
type ShowInput struct {
	ID              string            `json:"id"`
	Title           *string           `json:"title"`
	Slug            *string           `json:"slug"`
	Description     *string           `json:"description"`
	ShowType        *ShowType         `json:"showType"`
	VenueName       *string           `json:"venueName"`
	VenueAddress    *string           `json:"venueAddress"`
	City            *string           `json:"city"`
	Country         *string           `json:"country"`
	EventDate       *string           `json:"eventDate"`
	DoorsOpen       *string           `json:"doorsOpen"`
	ShowStart       *string           `json:"showStart"`
	Timezone        *string           `json:"timezone"`
	CoverImageURL   *string           `json:"coverImageUrl"`
	GalleryURLs     *[]string         `json:"galleryUrls"`
	PromoVideoURL   *string           `json:"promoVideoUrl"`
	IsTicketed      *bool             `json:"isTicketed"`
	LiveStreamURL   *string           `json:"liveStreamUrl"`
	StreamPlatform  *string           `json:"streamPlatform"`
	IsLiveNow       *bool             `json:"isLiveNow"`
	Designers       *[]string         `json:"designers"`
	Sponsors        *[]string         `json:"sponsors"`
	Status          *ShowStatus       `json:"status"`
	IsFeatured      *bool             `json:"isFeatured"`
	TicketTypesData []TicketTypeInput `json:"ticketTypesData"`
}

// TicketTypeInput 票種的新增 / 修改內容
type TicketTypeInput struct {
	ID            string  `json:"id"`
	ShowID        string  `json:"showId"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	PriceUsd      *int64  `json:"priceUsd"`
	TotalQuantity *int    `json:"totalQuantity"`

	// ClearTotalQuantity 改回不限量；不可與 totalQuantity 同時帶
	ClearTotalQuantity bool      `json:"clearTotalQuantity"`
	Features           *[]string `json:"features"`
	StripePriceID      *string   `json:"stripePriceId"`
	IsFeatured         *bool     `json:"isFeatured"`
	SortOrder          *int      `json:"sortOrder"`
	IsActive           *bool     `json:"isActive"`
}

// Slugify 標題轉小寫，連續空白換成 "-"
func Slugify(title string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(title), "-")
}

// ParseEventTime 接受 RFC3339 或 YYYY-MM-DD
func ParseEventTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", value)
}
