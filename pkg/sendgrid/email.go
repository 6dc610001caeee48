package sendgrid

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNotConfigured = errors.New("sendgrid api key is not set")

// Message is one transactional email. Category and Args are attached for SendGrid event tracking.
type Message struct {
	To       string
	ToName   string
	Subject  string
	Text     string
	HTML     string
	Category string
	Args     map[string]string
}

// SendError is returned when SendGrid answers with a non-2xx status.
type SendError struct {
	StatusCode int
	Body       string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("sendgrid rejected message, status code: %d", e.StatusCode)
}

// Retryable reports whether a later attempt may succeed.
func (e *SendError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

type EmailService interface {
	Send(ctx context.Context, msg *Message) error
}

type Option func(*emailService)

// WithBaseURL points the client at another API host.
func WithBaseURL(url string) Option {
	return func(e *emailService) {
		e.client.Request.BaseURL = url
	}
}

type emailService struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string, opts ...Option) EmailService {
	e := &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *emailService) Send(ctx context.Context, msg *Message) error {
	if e.apiKey == "" {
		return ErrNotConfigured
	}

	response, err := e.client.SendWithContext(ctx, buildMail(e.fromEmail, e.fromName, msg))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 300 {
		return &SendError{StatusCode: response.StatusCode, Body: response.Body}
	}

	return nil
}

func buildMail(fromEmail, fromName string, msg *Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(fromName, fromEmail))

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail(msg.ToName, msg.To))
	p.Subject = msg.Subject

	for k, v := range msg.Args {
		p.SetCustomArg(k, v)
	}

	m.AddPersonalizations(p)
	m.AddContent(mail.NewContent("text/plain", msg.Text))

	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	if msg.Category != "" {
		m.AddCategories(msg.Category)
	}

	return m
}
