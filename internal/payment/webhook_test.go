package payment

import (
	"errors"
	"testing"
	"time"

	apperrors "runway-tickets/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testSecret = "whsec_test_payment"

func TestStripeEventVerifier_Verify(t *testing.T) {
	payload := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","created":1700000000,"data":{"object":{"id":"cs_1"}}}`)

	t.Run("Success", func(t *testing.T) {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   payload,
			Secret:    testSecret,
			Timestamp: time.Now(),
		})

		event, err := NewStripeEventVerifier(testSecret).Verify(signed.Payload, signed.Header)

		require.NoError(t, err)
		assert.Equal(t, "evt_1", event.ID)
		assert.Equal(t, stripe.EventType("checkout.session.completed"), event.Type)
		assert.Equal(t, int64(1700000000), event.Created)
	})

	t.Run("Failed - wrong secret", func(t *testing.T) {
		signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   payload,
			Secret:    "whsec_other",
			Timestamp: time.Now(),
		})

		_, err := NewStripeEventVerifier(testSecret).Verify(signed.Payload, signed.Header)

		assert.True(t, errors.Is(err, apperrors.ErrInvalidSignature))
	})

	t.Run("Failed - secret not configured", func(t *testing.T) {
		_, err := NewStripeEventVerifier("").Verify(payload, "t=1,v1=abc")

		assert.ErrorIs(t, err, apperrors.ErrWebhookNotConfigured)
	})
}

func TestDecodeCheckoutSession(t *testing.T) {
	event := stripe.Event{
		Data: &stripe.EventData{
			Raw: []byte(`{"id":"cs_1","amount_total":15000,"payment_status":"paid","payment_intent":"pi_1","metadata":{"quantity":"2"}}`),
		},
	}

	sess, err := DecodeCheckoutSession(event)

	require.NoError(t, err)
	assert.Equal(t, "cs_1", sess.ID)
	assert.Equal(t, int64(15000), sess.AmountTotal)
	assert.Equal(t, stripe.CheckoutSessionPaymentStatusPaid, sess.PaymentStatus)
	require.NotNil(t, sess.PaymentIntent)
	assert.Equal(t, "pi_1", sess.PaymentIntent.ID)
	assert.Equal(t, "2", sess.Metadata["quantity"])
}
