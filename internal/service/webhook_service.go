package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"runway-tickets/internal/cache"
	"runway-tickets/internal/metrics"
	"runway-tickets/internal/payment"
	apperrors "runway-tickets/pkg/app_errors"
	"runway-tickets/pkg/logger"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// MaxEventAge 超過此時間的事件視為重放
const MaxEventAge = 300 * time.Second

// HandledEventTypes 只處理這四種事件，其他一律回 200 不處理
var HandledEventTypes = map[stripe.EventType]bool{
	stripe.EventTypeCheckoutSessionCompleted:   true,
	stripe.EventTypeCheckoutSessionExpired:     true,
	stripe.EventTypePaymentIntentSucceeded:     true,
	stripe.EventTypePaymentIntentPaymentFailed: true,
}

type WebhookService interface {
	// 驗證簽章、新鮮度與事件類型後分派；回傳 nil 代表可以回覆 {received:true}
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

type WebhookServiceImpl struct {
	verifier    payment.EventVerifier
	fulfillment FulfillmentService
	dedup       cache.EventDeduplicator
	now         func() time.Time
}

func NewWebhookService(verifier payment.EventVerifier, fulfillment FulfillmentService, dedup cache.EventDeduplicator) WebhookService {
	return &WebhookServiceImpl{
		verifier:    verifier,
		fulfillment: fulfillment,
		dedup:       dedup,
		now:         time.Now,
	}
}

func (s *WebhookServiceImpl) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	log := logger.WithComponent("webhook")

	if signature == "" {
		metrics.WebhookEvents.WithLabelValues("unknown", metrics.OutcomeRejected).Inc()
		return apperrors.ErrMissingSignature
	}

	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		if !errors.Is(err, apperrors.ErrWebhookNotConfigured) {
			log.Warn("webhook signature verification failed", zap.Error(err))
		}
		metrics.WebhookEvents.WithLabelValues("unknown", metrics.OutcomeRejected).Inc()
		return err
	}

	eventType := string(event.Type)
	log = log.With(zap.String("event_id", event.ID), zap.String("event_type", eventType))

	age := s.now().Sub(time.Unix(event.Created, 0))
	if age > MaxEventAge {
		log.Warn("webhook event too old", zap.Duration("age", age))
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeRejected).Inc()
		return fmt.Errorf("%w: age %s", apperrors.ErrStaleEvent, age.Truncate(time.Second))
	}

	if !HandledEventTypes[event.Type] {
		log.Debug("ignoring webhook event type")
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeIgnored).Inc()
		return nil
	}

	// Redis 失敗時照常處理，唯一性由資料庫保證
	seen, err := s.dedup.Seen(ctx, event.ID)
	if err != nil {
		log.Warn("event dedup lookup failed", zap.Error(err))
	} else if seen {
		log.Info("webhook event already processed")
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeDuplicate).Inc()
		return nil
	}

	if err := s.dispatch(ctx, event, log); err != nil {
		metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeFailed).Inc()
		return err
	}

	if err := s.dedup.MarkProcessed(ctx, event.ID); err != nil {
		log.Warn("mark event processed failed", zap.Error(err))
	}
	metrics.WebhookEvents.WithLabelValues(eventType, metrics.OutcomeProcessed).Inc()
	return nil
}

func (s *WebhookServiceImpl) dispatch(ctx context.Context, event stripe.Event, log *zap.Logger) error {
	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		sess, err := payment.DecodeCheckoutSession(event)
		if err != nil {
			return err
		}
		_, err = s.fulfillment.CompleteCheckout(ctx, sess)
		return err

	case stripe.EventTypeCheckoutSessionExpired:
		sess, err := payment.DecodeCheckoutSession(event)
		if err != nil {
			return err
		}
		log.Info("checkout session expired", zap.String("session_id", sess.ID))
		return nil

	case stripe.EventTypePaymentIntentSucceeded:
		intent, err := payment.DecodePaymentIntent(event)
		if err != nil {
			return err
		}
		return s.fulfillment.MarkPaymentSucceeded(ctx, intent.ID)

	case stripe.EventTypePaymentIntentPaymentFailed:
		intent, err := payment.DecodePaymentIntent(event)
		if err != nil {
			return err
		}
		fields := []zap.Field{zap.String("payment_intent_id", intent.ID)}
		if intent.LastPaymentError != nil {
			fields = append(fields, zap.String("reason", intent.LastPaymentError.Msg))
		}
		log.Warn("payment failed", fields...)
		return nil
	}
	return nil
}
