package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecentShow struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Status    ShowStatus `json:"status"`
	EventDate time.Time  `json:"eventDate"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AdminStats Revenue 以美元表示
type AdminStats struct {
	TotalShows    int             `json:"totalShows"`
	TotalTickets  int             `json:"totalTickets"`
	TotalUsers    int             `json:"totalUsers"`
	TotalVideos   int             `json:"totalVideos"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	RecentShows   []*RecentShow   `json:"recentShows"`
	RecentTickets []*RecentTicket `json:"recentTickets"`
}
