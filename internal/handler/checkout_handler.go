package handler

import (
	"net/http"

	"runway-tickets/internal/model"
	"runway-tickets/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkout    service.CheckoutService
	fulfillment service.FulfillmentService
}

func NewCheckoutHandler(checkout service.CheckoutService, fulfillment service.FulfillmentService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, fulfillment: fulfillment}
}

func (h *CheckoutHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/stripe/create-checkout", h.CreateCheckout)
	r.GET("/api/tickets/session", h.GetTicketBySession)
}

func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var req model.CreateCheckoutRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	resp, err := h.checkout.CreateCheckout(c, req)
	if err != nil {
		handleError(c, err, "CreateCheckout", "Failed to create checkout session")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTicketBySession 付款成功頁輪詢用，webhook 處理完之前回 404
func (h *CheckoutHandler) GetTicketBySession(c *gin.Context) {
	var query model.TicketSessionQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}
	ticket, err := h.fulfillment.GetBySession(c, query.SessionID)
	if err != nil {
		handleError(c, err, "GetTicketBySession", "Failed to fetch ticket")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}
