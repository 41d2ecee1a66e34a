package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrSendGridAPIKeyRequired is returned when the SendGrid driver has no API key.
var ErrSendGridAPIKeyRequired = errors.New("sendgrid api key is required")

// SendGridConfig configures the SendGrid implementation.
type SendGridConfig struct {
	APIKey string
	// From is the default sender when Message.From is empty.
	From string
	// SandboxMode makes SendGrid validate the request without delivering it.
	SandboxMode bool
}

// SendGrid is a Mail implementation backed by the SendGrid v3 HTTP API.
type SendGrid struct {
	client      *sendgrid.Client
	defaultFrom string
	sandbox     bool
}

// NewSendGrid constructs a SendGrid mail sender.
func NewSendGrid(cfg SendGridConfig) (*SendGrid, error) {
	if cfg.APIKey == "" {
		return nil, ErrSendGridAPIKeyRequired
	}

	return &SendGrid{
		client:      sendgrid.NewSendClient(cfg.APIKey),
		defaultFrom: cfg.From,
		sandbox:     cfg.SandboxMode,
	}, nil
}

// Send delivers a message through the SendGrid API.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send failed: status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (s *SendGrid) Close() error {
	return nil
}

func (s *SendGrid) build(msg Message) (*sgmail.SGMailV3, error) {
	if len(recipients(msg)) == 0 {
		return nil, ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return nil, ErrNoSender
	}

	name, addr, err := parseSender(from)
	if err != nil {
		return nil, fmt.Errorf("parse sender: %w", err)
	}

	p := sgmail.NewPersonalization()
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}
	for _, cc := range msg.Cc {
		p.AddCCs(sgmail.NewEmail("", cc))
	}
	for _, bcc := range msg.Bcc {
		p.AddBCCs(sgmail.NewEmail("", bcc))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail(name, addr))
	m.Subject = msg.Subject
	m.AddPersonalizations(p)

	// SendGrid requires text/plain to precede text/html.
	if msg.TextBody != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.TextBody))
	}
	if msg.HTMLBody != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	}

	if s.sandbox {
		ms := sgmail.NewMailSettings()
		ms.SetSandboxMode(sgmail.NewSetting(true))
		m.MailSettings = ms
	}

	return m, nil
}
