package services

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type WebhookServiceMock struct {
	mock.Mock
}

func NewWebhookServiceMock() *WebhookServiceMock {
	return &WebhookServiceMock{}
}

func (m *WebhookServiceMock) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	args := m.Called(ctx, payload, signature)
	return args.Error(0)
}

type FulfillmentServiceMock struct {
	mock.Mock
}

func NewFulfillmentServiceMock() *FulfillmentServiceMock {
	return &FulfillmentServiceMock{}
}

func (m *FulfillmentServiceMock) CompleteCheckout(ctx context.Context, sess *stripe.CheckoutSession) (*model.IssueResult, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssueResult), args.Error(1)
}

func (m *FulfillmentServiceMock) MarkPaymentSucceeded(ctx context.Context, paymentIntentID string) error {
	args := m.Called(ctx, paymentIntentID)
	return args.Error(0)
}

func (m *FulfillmentServiceMock) GetBySession(ctx context.Context, sessionID string) (*model.Ticket, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}
