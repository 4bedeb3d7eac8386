package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus 存成自由文字，常見值如下
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
)

// Ticket 已售出的票券；只由付款完成流程建立
type Ticket struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	TicketTypeID          uuid.UUID  `json:"ticketTypeId" db:"ticket_type_id"`
	ShowID                uuid.UUID  `json:"showId" db:"show_id"`
	UserID                *uuid.UUID `json:"userId" db:"user_id"`
	TicketNumber          *string    `json:"ticketNumber" db:"ticket_number"`
	PricePaid             int64      `json:"pricePaid" db:"price_paid"`
	Quantity              int        `json:"quantity" db:"quantity"`
	CustomerName          *string    `json:"customerName" db:"customer_name"`
	CustomerEmail         *string    `json:"customerEmail" db:"customer_email"`
	CustomerPhone         *string    `json:"customerPhone" db:"customer_phone"`
	StripeSessionID       string     `json:"stripeSessionId" db:"stripe_session_id"`
	StripePaymentIntentID *string    `json:"stripePaymentIntentId" db:"stripe_payment_intent_id"`
	PaymentStatus         string     `json:"paymentStatus" db:"payment_status"`
	IsCheckedIn           bool       `json:"isCheckedIn" db:"is_checked_in"`
	CheckInTime           *time.Time `json:"checkInTime" db:"check_in_time"`
	QRCode                string     `json:"qrCode" db:"qr_code"`
	PromoCode             *string    `json:"promoCode" db:"promo_code"`
	PurchasedAt           time.Time  `json:"purchasedAt" db:"purchased_at"`
}

// IssueResult Created 為 false 代表同一 checkout session 已經開過票
type IssueResult struct {
	Ticket  *Ticket
	Created bool
}

// RecentTicket 後台統計頁的最近售票
type RecentTicket struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  *string   `json:"customerName"`
	CustomerEmail *string   `json:"customerEmail"`
	PricePaid     int64     `json:"pricePaid"`
	Quantity      int       `json:"quantity"`
	PurchasedAt   time.Time `json:"purchasedAt"`
}
