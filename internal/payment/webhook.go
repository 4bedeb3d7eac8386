package payment

import (
	"encoding/json"
	"fmt"

	apperrors "runway-tickets/pkg/app_errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// EventVerifier 驗證 webhook 簽章並解析事件
type EventVerifier interface {
	Verify(payload []byte, signature string) (stripe.Event, error)
}

type StripeEventVerifier struct {
	secret string
}

func NewStripeEventVerifier(secret string) *StripeEventVerifier {
	return &StripeEventVerifier{secret: secret}
}

func (v *StripeEventVerifier) Verify(payload []byte, signature string) (stripe.Event, error) {
	if v.secret == "" {
		return stripe.Event{}, apperrors.ErrWebhookNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSignature, err)
	}
	return event, nil
}

func DecodeCheckoutSession(event stripe.Event) (*stripe.CheckoutSession, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	return &sess, nil
}

func DecodePaymentIntent(event stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	return &intent, nil
}
