package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketIssued 首次開票後送往通知佇列的訊息
type TicketIssued struct {
	TicketID      uuid.UUID `json:"ticketId"`
	ShowID        uuid.UUID `json:"showId"`
	TicketTypeID  uuid.UUID `json:"ticketTypeId"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerName  string    `json:"customerName"`
	Quantity      int       `json:"quantity"`
	QRCode        string    `json:"qrCode"`
	IssuedAt      time.Time `json:"issuedAt"`
}
