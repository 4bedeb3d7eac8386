package services

import (
	"context"

	"runway-tickets/internal/model"

	"github.com/stretchr/testify/mock"
)

type CheckoutServiceMock struct {
	mock.Mock
}

func NewCheckoutServiceMock() *CheckoutServiceMock {
	return &CheckoutServiceMock{}
}

func (m *CheckoutServiceMock) CreateCheckout(ctx context.Context, req model.CreateCheckoutRequest) (*model.CreateCheckoutResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreateCheckoutResponse), args.Error(1)
}
