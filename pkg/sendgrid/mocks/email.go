package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-backend/pkg/sendgrid"
	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

func NewEmailService(t cleanupT) *EmailService {
	m := &EmailService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *EmailService) Send(ctx context.Context, msg *sendgrid.Message) error {
	return m.Called(ctx, msg).Error(0)
}
