package service

import (
	"context"
	"errors"
	"strconv"

	"runway-tickets/internal/cache"
	"runway-tickets/internal/metrics"
	"runway-tickets/internal/model"
	"runway-tickets/internal/queue"
	"runway-tickets/internal/repository"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type FulfillmentService interface {
	// 付款完成後開票；同一 session 重送只會有一張票。無法對應的 session 回傳 nil, nil
	CompleteCheckout(ctx context.Context, sess *stripe.CheckoutSession) (*model.IssueResult, error)
	MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) error
	// 付款成功頁以 session id 查詢票券；webhook 尚未抵達時回傳 ErrTicketNotFound
	GetBySession(ctx context.Context, sessionID string) (*model.Ticket, error)
}

type FulfillmentServiceImpl struct {
	db                   TxBeginner
	ticketRepository     repository.TicketRepository
	ticketTypeRepository repository.TicketTypeRepository
	showRepository       repository.ShowRepository
	notifications        queue.NotificationQueue
	showCache            cache.ShowCache
	newQRCode            func() string
}

func NewFulfillmentService(
	db TxBeginner,
	ticketRepository repository.TicketRepository,
	ticketTypeRepository repository.TicketTypeRepository,
	showRepository repository.ShowRepository,
	notifications queue.NotificationQueue,
	showCache cache.ShowCache,
) FulfillmentService {
	return &FulfillmentServiceImpl{
		db:                   db,
		ticketRepository:     ticketRepository,
		ticketTypeRepository: ticketTypeRepository,
		showRepository:       showRepository,
		notifications:        notifications,
		showCache:            showCache,
		newQRCode:            uuid.NewString,
	}
}

func (s *FulfillmentServiceImpl) CompleteCheckout(ctx context.Context, sess *stripe.CheckoutSession) (*model.IssueResult, error) {
	log := logger.WithComponent("fulfillment").With(zap.String("session_id", sess.ID))

	meta, ok := parseCheckoutMetadata(sess.Metadata, log)
	if !ok {
		// 缺少對應資訊的 session 不是我們建立的，重送也不會成功
		log.Warn("checkout session missing ticket metadata, skipping", zap.Any("metadata", sess.Metadata))
		return nil, nil
	}

	tt, err := s.ticketTypeRepository.FindByID(ctx, meta.TicketTypeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTicketTypeNotFound) {
			log.Error("ticket type for paid session no longer exists", zap.String("ticket_type_id", meta.TicketTypeID.String()))
			return nil, nil
		}
		return nil, err
	}
	if tt.ShowID != meta.ShowID {
		log.Warn("session show does not match ticket type, using ticket type show",
			zap.String("metadata_show_id", meta.ShowID.String()),
			zap.String("ticket_type_show_id", tt.ShowID.String()))
	}

	ticket := newTicketFromSession(sess, tt, meta.Quantity)
	ticket.QRCode = s.newQRCode()

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	saved, created, err := s.ticketRepository.CreateIfAbsent(ctx, tx, ticket)
	if err != nil {
		return nil, err
	}

	if created {
		updated, err := s.ticketTypeRepository.IncrementSold(ctx, tx, tt.ID, saved.Quantity)
		if err != nil {
			return nil, err
		}
		if updated.ExceedsCapacity(0) {
			// 已收款，不拒絕；只留紀錄給營運處理
			metrics.TicketTypesOversold.Inc()
			log.Warn("ticket type oversold",
				zap.String("ticket_type_id", updated.ID.String()),
				zap.Int("sold", updated.SoldCount),
				zap.Int("total", *updated.TotalQuantity))
		}
		if err := s.showRepository.IncrementTicketsSold(ctx, tx, saved.ShowID, saved.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if !created {
		log.Info("checkout session already fulfilled", zap.String("ticket_id", saved.ID.String()))
		metrics.TicketsIssued.WithLabelValues("duplicate").Inc()
		return &model.IssueResult{Ticket: saved, Created: false}, nil
	}

	metrics.TicketsIssued.WithLabelValues("created").Inc()
	log.Info("ticket issued",
		zap.String("ticket_id", saved.ID.String()),
		zap.Int("quantity", saved.Quantity),
		zap.Int64("price_paid", saved.PricePaid))

	// 已售數量變了，公開列表的快取要重建
	if err := s.showCache.Invalidate(ctx); err != nil {
		log.Warn("invalidate show cache failed", zap.Error(err))
	}

	s.publishIssued(ctx, saved, log)
	return &model.IssueResult{Ticket: saved, Created: true}, nil
}

func (s *FulfillmentServiceImpl) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) error {
	if paymentIntentID == "" {
		return nil
	}
	n, err := s.ticketRepository.MarkPaymentSucceeded(ctx, paymentIntentID)
	if err != nil {
		return err
	}
	logger.WithComponent("fulfillment").Info("payment intent succeeded",
		zap.String("payment_intent_id", paymentIntentID), zap.Int64("tickets_updated", n))
	return nil
}

func (s *FulfillmentServiceImpl) GetBySession(ctx context.Context, sessionID string) (*model.Ticket, error) {
	if sessionID == "" {
		return nil, apperrors.ErrMissingFields
	}
	return s.ticketRepository.FindBySessionID(ctx, sessionID)
}

// publishIssued 通知失敗只記錄，不影響已完成的開票
func (s *FulfillmentServiceImpl) publishIssued(ctx context.Context, ticket *model.Ticket, log *zap.Logger) {
	n := &model.TicketIssued{
		TicketID:     ticket.ID,
		ShowID:       ticket.ShowID,
		TicketTypeID: ticket.TicketTypeID,
		Quantity:     ticket.Quantity,
		QRCode:       ticket.QRCode,
		IssuedAt:     ticket.PurchasedAt,
	}
	if ticket.CustomerEmail != nil {
		n.CustomerEmail = *ticket.CustomerEmail
	}
	if ticket.CustomerName != nil {
		n.CustomerName = *ticket.CustomerName
	}
	if err := s.notifications.Publish(ctx, n); err != nil {
		log.Error("publish ticket issued notification failed", zap.String("ticket_id", ticket.ID.String()), zap.Error(err))
	}
}

// parseCheckoutMetadata quantity 缺少或無法解析時視為 1
func parseCheckoutMetadata(metadata map[string]string, log *zap.Logger) (model.CheckoutMetadata, bool) {
	var meta model.CheckoutMetadata

	showID, err := uuid.Parse(metadata[MetadataShowID])
	if err != nil {
		return meta, false
	}
	ticketTypeID, err := uuid.Parse(metadata[MetadataTicketTypeID])
	if err != nil {
		return meta, false
	}

	quantity := 1
	if raw, ok := metadata[MetadataQuantity]; ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			log.Warn("invalid quantity in checkout metadata, defaulting to 1", zap.String("quantity", raw))
		} else {
			quantity = n
		}
	}

	meta.ShowID = showID
	meta.TicketTypeID = ticketTypeID
	meta.Quantity = quantity
	return meta, true
}

func newTicketFromSession(sess *stripe.CheckoutSession, tt *model.TicketType, quantity int) *model.Ticket {
	ticket := &model.Ticket{
		TicketTypeID:    tt.ID,
		ShowID:          tt.ShowID,
		PricePaid:       sess.AmountTotal,
		Quantity:        quantity,
		StripeSessionID: sess.ID,
		PaymentStatus:   model.PaymentStatusPending,
	}
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		ticket.PaymentStatus = model.PaymentStatusSucceeded
	}
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		ticket.StripePaymentIntentID = stripe.String(sess.PaymentIntent.ID)
	}
	if d := sess.CustomerDetails; d != nil {
		ticket.CustomerName = nonEmpty(d.Name)
		ticket.CustomerEmail = nonEmpty(d.Email)
		ticket.CustomerPhone = nonEmpty(d.Phone)
	}
	if ticket.CustomerEmail == nil {
		ticket.CustomerEmail = nonEmpty(sess.CustomerEmail)
	}
	return ticket
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
