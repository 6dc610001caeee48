package mocks

import (
	"context"

	stripeClient "github.com/aaravmahajanofficial/storefront-backend/pkg/stripe"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func NewClient(t cleanupT) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Client) CreatePaymentIntent(ctx context.Context, in stripeClient.PaymentIntentInput) (*stripeClient.PaymentIntent, error) {
	args := m.Called(ctx, in)

	var r0 *stripeClient.PaymentIntent
	if v := args.Get(0); v != nil {
		r0 = v.(*stripeClient.PaymentIntent)
	}

	return r0, args.Error(1)
}

func (m *Client) VerifyWebhookSignature(payload []byte, signature string) (stripeClient.Event, error) {
	args := m.Called(payload, signature)
	return args.Get(0).(stripeClient.Event), args.Error(1)
}

func (m *Client) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
