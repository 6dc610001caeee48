package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-backend/internal/config"
	stripeClient "github.com/aaravmahajanofficial/storefront-backend/pkg/stripe"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const (
	componentName    = "storefront-backend"
	componentVersion = "1.0.0"
)

var ErrStripeNotConfigured = errors.New("stripe client is not initialized")

type Endpoints struct {
	Stripe stripeClient.Client
}

// StripeCheck fails when no client is wired or the API is unreachable.
func StripeCheck(client stripeClient.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrStripeNotConfigured
		}

		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to stripe: %w", err)
		}

		return nil
	}
}

// NewHealthHandler checks Postgres and Redis as hard dependencies. Stripe is reported but
// skipped on error, since only card payments need it.
func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {
	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: componentVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:    "database",
				Timeout: 3 * time.Second,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:    "redis",
				Timeout: 2 * time.Second,
				Check: healthRedis.New(healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				}),
			},
			health.Config{
				Name:      "stripe",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check:     StripeCheck(endpoints.Stripe),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
