package handler

import (
	"errors"
	"net/http"

	"runway-tickets/internal/service"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBody Stripe 事件不會超過 64KB
const maxWebhookBody = 65536

type WebhookHandler struct {
	service service.WebhookService
}

func NewWebhookHandler(service service.WebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

func (h *WebhookHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/stripe/webhook", h.Receive)
}

// Receive 簽章驗證需要原始 body，不能先做 JSON binding
func (h *WebhookHandler) Receive(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err = h.service.HandleEvent(c, payload, c.GetHeader("Stripe-Signature"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, apperrors.ErrMissingSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing stripe-signature header"})
	case errors.Is(err, apperrors.ErrWebhookNotConfigured):
		logger.WithComponent("handler").Error("stripe webhook secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
	case errors.Is(err, apperrors.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
	case errors.Is(err, apperrors.ErrStaleEvent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event too old"})
	default:
		// 500 讓閘道稍後重送
		logger.WithComponent("handler").Error("webhook handler failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
	}
}
