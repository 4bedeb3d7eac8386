package model

import "github.com/google/uuid"

// CreateCheckoutRequest 前端送來的購票資訊；價格以資料庫為準
type CreateCheckoutRequest struct {
	ShowID         string  `json:"showId"`
	TicketTypeID   string  `json:"ticketTypeId"`
	TicketTypeName string  `json:"ticketTypeName"`
	PriceUsd       int64   `json:"priceUsd"`
	Quantity       int     `json:"quantity"`
	ShowTitle      string  `json:"showTitle"`
	CustomerEmail  *string `json:"customerEmail"`
	CustomerName   *string `json:"customerName"`
}

// HasRequiredFields 必填欄位需存在且非零值
func (r CreateCheckoutRequest) HasRequiredFields() bool {
	return r.ShowID != "" && r.TicketTypeID != "" && r.PriceUsd != 0 && r.Quantity != 0
}

type CreateCheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutSessionInput 交給付款閘道建立 hosted checkout session 的內容
type CheckoutSessionInput struct {
	ProductName        string
	ProductDescription string
	UnitAmount         int64
	Quantity           int
	CustomerEmail      *string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
	ExpiresAt          int64
}

// CheckoutMetadata 付款完成時用來對應 show / ticket type 的資訊
type CheckoutMetadata struct {
	ShowID       uuid.UUID
	TicketTypeID uuid.UUID
	Quantity     int
}

// TicketSessionQuery 付款成功頁帶回的 checkout session id
type TicketSessionQuery struct {
	SessionID string `form:"session_id"`
}
