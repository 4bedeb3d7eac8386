package payment

import (
	"context"
	"fmt"

	"runway-tickets/internal/model"

	"github.com/stripe/stripe-go/v82"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
)

// CheckoutGateway 建立 hosted checkout session 的付款閘道
type CheckoutGateway interface {
	CreateCheckoutSession(ctx context.Context, input model.CheckoutSessionInput) (*model.CreateCheckoutResponse, error)
}

type StripeCheckoutGateway struct {
	sessions *checkoutsession.Client
	currency string
}

// NewStripeCheckoutGateway 每個 gateway 持有自己的 key，不寫入 stripe.Key 全域變數
func NewStripeCheckoutGateway(secretKey, currency string) *StripeCheckoutGateway {
	return &StripeCheckoutGateway{
		sessions: &checkoutsession.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		currency: currency,
	}
}

func (g *StripeCheckoutGateway) CreateCheckoutSession(ctx context.Context, input model.CheckoutSessionInput) (*model.CreateCheckoutResponse, error) {
	params := BuildCheckoutSessionParams(input, g.currency)
	params.Context = ctx

	sess, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}

	return &model.CreateCheckoutResponse{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

// BuildCheckoutSessionParams 單一 line item、信用卡付款、需填帳單地址、允許折扣碼
func BuildCheckoutSessionParams(input model.CheckoutSessionInput, currency string) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(input.ProductName),
						Description: stripe.String(input.ProductDescription),
					},
					UnitAmount: stripe.Int64(input.UnitAmount),
				},
				Quantity: stripe.Int64(int64(input.Quantity)),
			},
		},
		SuccessURL:               stripe.String(input.SuccessURL),
		CancelURL:                stripe.String(input.CancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		AllowPromotionCodes:      stripe.Bool(true),
		ExpiresAt:                stripe.Int64(input.ExpiresAt),
	}
	if input.CustomerEmail != nil && *input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(*input.CustomerEmail)
	}
	for k, v := range input.Metadata {
		params.AddMetadata(k, v)
	}
	return params
}
