package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/mail"
)

type captureMail struct {
	sent []mail.Message
	err  error
}

func (c *captureMail) Send(_ context.Context, msg mail.Message) error {
	c.sent = append(c.sent, msg)
	return c.err
}

func (c *captureMail) Close() error { return nil }

func TestMail_SendOTP(t *testing.T) {
	client := &captureMail{}
	m := New(client, `"WorkNest Support" <support@worknest.dev>`, instrument.NewNoop())

	require.NoError(t, m.SendOTP(context.Background(), "a@x.com", "48213", 5*time.Minute))

	require.Len(t, client.sent, 1)
	msg := client.sent[0]
	assert.Equal(t, []string{"a@x.com"}, msg.To)
	assert.Equal(t, `"WorkNest Support" <support@worknest.dev>`, msg.From)
	assert.Equal(t, "Your One-Time Password (OTP) for Secure Access", msg.Subject)
	assert.Contains(t, msg.TextBody, "OTP: 48213")
	assert.Contains(t, msg.TextBody, "valid for 5 minutes")
	assert.Empty(t, msg.HTMLBody)
}

func TestMail_SendOTPError(t *testing.T) {
	client := &captureMail{err: errors.New("boom")}
	m := New(client, "", instrument.NewNoop())

	err := m.SendOTP(context.Background(), "a@x.com", "48213", time.Minute)

	assert.EqualError(t, err, "boom")
	assert.Contains(t, client.sent[0].TextBody, "valid for 1 minute.")
}

func TestHumanizeExpiry(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 30 * time.Second, want: "30 seconds"},
		{in: time.Second, want: "1 second"},
		{in: 200 * time.Millisecond, want: "1 second"},
		{in: time.Minute, want: "1 minute"},
		{in: 90 * time.Second, want: "1 minute"},
		{in: 5 * time.Minute, want: "5 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeExpiry(tt.in))
		})
	}
}
