package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/balance"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
)

type (
	Event         = stripe.Event
	PaymentIntent = stripe.PaymentIntent
)

var ErrWebhookSecretMissing = errors.New("webhook secret not configured")

// PaymentIntentInput describes one charge. Amount is in the currency's minor unit.
type PaymentIntentInput struct {
	Amount      int64
	Currency    string
	Description string
	Metadata    map[string]string
}

type Client interface {
	CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (*PaymentIntent, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
	Ping(ctx context.Context) error
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

func (s *stripeClient) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (*PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(in.Amount),
		Currency:    stripe.String(in.Currency),
		Description: stripe.String(in.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	return paymentintent.New(params)
}

func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, ErrWebhookSecretMissing
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}

// Ping reads the account balance, the cheapest authenticated call.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	_, err := balance.Get(params)

	return err
}
