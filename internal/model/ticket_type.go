package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketType 票種（一般入場、VIP…），隸屬單一 Show
type TicketType struct {
	ID            uuid.UUID `json:"id" db:"id"`
	ShowID        uuid.UUID `json:"showId" db:"show_id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description" db:"description"`
	PriceUsd      int64     `json:"priceUsd" db:"price_usd"`
	TotalQuantity *int      `json:"totalQuantity" db:"total_quantity"`
	SoldCount     int       `json:"soldCount" db:"sold_count"`
	Features      []string  `json:"features" db:"features"`
	StripePriceID *string   `json:"stripePriceId" db:"stripe_price_id"`
	IsFeatured    bool      `json:"isFeatured" db:"is_featured"`
	SortOrder     int       `json:"sortOrder" db:"sort_order"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// IsUnlimited TotalQuantity 為 NULL 代表不限量
func (t *TicketType) IsUnlimited() bool {
	return t.TotalQuantity == nil
}

// ExceedsCapacity 檢查再賣出 quantity 張是否超過總量
func (t *TicketType) ExceedsCapacity(quantity int) bool {
	if t.IsUnlimited() {
		return false
	}
	return t.SoldCount+quantity > *t.TotalQuantity
}

type UpdateTicketTypeParams struct {
	Name          *string
	Description   *string
	PriceUsd      *int64
	TotalQuantity *int

	// ClearTotalQuantity 將 total_quantity 設為 NULL（不限量）
	ClearTotalQuantity bool
	Features           *[]string
	StripePriceID      *string
	IsFeatured         *bool
	SortOrder          *int
	IsActive           *bool
}
