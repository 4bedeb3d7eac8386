package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"runway-tickets/internal/metrics"
	"runway-tickets/internal/model"
	"runway-tickets/internal/payment"
	"runway-tickets/internal/repository"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"go.uber.org/zap"
)

const CheckoutSessionTTL = 30 * time.Minute

// Checkout metadata keys，付款完成時靠這些欄位對應票種
const (
	MetadataShowID       = "showId"
	MetadataTicketTypeID = "ticketTypeId"
	MetadataQuantity     = "quantity"
)

type CheckoutService interface {
	// 建立 hosted checkout session，不寫入任何本地資料
	CreateCheckout(ctx context.Context, req model.CreateCheckoutRequest) (*model.CreateCheckoutResponse, error)
}

type CheckoutServiceImpl struct {
	gateway              payment.CheckoutGateway
	showRepository       repository.ShowRepository
	ticketTypeRepository repository.TicketTypeRepository
	publicURL            string
	now                  func() time.Time
}

func NewCheckoutService(
	gateway payment.CheckoutGateway,
	showRepository repository.ShowRepository,
	ticketTypeRepository repository.TicketTypeRepository,
	publicURL string,
) CheckoutService {
	return &CheckoutServiceImpl{
		gateway:              gateway,
		showRepository:       showRepository,
		ticketTypeRepository: ticketTypeRepository,
		publicURL:            publicURL,
		now:                  time.Now,
	}
}

func (s *CheckoutServiceImpl) CreateCheckout(ctx context.Context, req model.CreateCheckoutRequest) (*model.CreateCheckoutResponse, error) {
	if !req.HasRequiredFields() {
		return nil, apperrors.ErrMissingFields
	}
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrInvalidInput)
	}
	showID, err := parseID(req.ShowID)
	if err != nil {
		return nil, err
	}
	ticketTypeID, err := parseID(req.TicketTypeID)
	if err != nil {
		return nil, err
	}

	// 價格以資料庫為準，不信任前端傳來的金額
	tt, err := s.ticketTypeRepository.FindByID(ctx, ticketTypeID)
	if err != nil {
		return nil, err
	}
	if tt.ShowID != showID {
		return nil, apperrors.ErrTicketTypeNotFound
	}
	if !tt.IsActive {
		return nil, apperrors.ErrTicketTypeInactive
	}
	if req.PriceUsd != tt.PriceUsd {
		return nil, apperrors.ErrPriceMismatch
	}

	show, err := s.showRepository.FindByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	input := model.CheckoutSessionInput{
		ProductName:        fmt.Sprintf("%s - %s", tt.Name, show.Title),
		ProductDescription: fmt.Sprintf("Ticket for %s", show.Title),
		UnitAmount:         tt.PriceUsd,
		Quantity:           req.Quantity,
		CustomerEmail:      req.CustomerEmail,
		SuccessURL:         s.publicURL + "/tickets/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          fmt.Sprintf("%s/shows/%s", s.publicURL, showID),
		Metadata: map[string]string{
			MetadataShowID:       showID.String(),
			MetadataTicketTypeID: ticketTypeID.String(),
			MetadataQuantity:     strconv.Itoa(req.Quantity),
		},
		ExpiresAt: s.now().Add(CheckoutSessionTTL).Unix(),
	}

	resp, err := s.gateway.CreateCheckoutSession(ctx, input)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.CheckoutSessions.WithLabelValues("created").Inc()

	logger.WithComponent("service").Info("checkout session created",
		zap.String("session_id", resp.SessionID),
		zap.String("show_id", showID.String()),
		zap.String("ticket_type_id", ticketTypeID.String()),
		zap.Int("quantity", req.Quantity),
	)
	return resp, nil
}
