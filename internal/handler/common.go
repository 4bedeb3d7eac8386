package handler

import (
	"errors"
	"net/http"

	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// handleError 把 service 錯誤轉成 HTTP 回應；未知錯誤一律回 500 與 fallback 訊息
func handleError(c *gin.Context, err error, operation, fallback string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrMissingFields):
		log.Warn("Missing required fields")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
	case errors.Is(err, apperrors.ErrShowIDRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Show ID required"})
	case errors.Is(err, apperrors.ErrTicketTypeIDRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticket type ID required"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrShowNotFound):
		log.Warn("Show not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Show not found"})
	case errors.Is(err, apperrors.ErrTicketTypeNotFound):
		log.Warn("Ticket type not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticket type not found"})
	case errors.Is(err, apperrors.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
	case errors.Is(err, apperrors.ErrDuplicateTicketType),
		errors.Is(err, apperrors.ErrTicketTypeInactive),
		errors.Is(err, apperrors.ErrPriceMismatch),
		errors.Is(err, apperrors.ErrTicketTypeInUse):
		log.Warn("Request rejected")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		log.Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
