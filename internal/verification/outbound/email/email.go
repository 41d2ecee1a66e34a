package email

import (
	"context"
	"fmt"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const subjectOTP = "Your One-Time Password (OTP) for Secure Access"

const bodyOTP = `Hello,

We received a request to verify your email address. Use the following One-Time Password (OTP) to proceed:

OTP: %s

This OTP is valid for %s. Do not share it with anyone.

If you did not request this, please ignore this email.

Best regards,
WorkNest Support Team`

type Mail struct {
	client mail.Mail
	from   string
	ins    instrument.Instrumentation
}

// New returns the OTP notifier. from may be empty to use the driver default.
func New(client mail.Mail, from string, ins instrument.Instrumentation) *Mail {
	return &Mail{client: client, from: from, ins: ins}
}

func (m *Mail) SendOTP(ctx context.Context, email, code string, expiry time.Duration) error {
	ctx, span := m.ins.Tracer("verification.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	if err := m.client.Send(ctx, mail.Message{
		From:     m.from,
		To:       []string{email},
		Subject:  subjectOTP,
		TextBody: fmt.Sprintf(bodyOTP, code, humanizeExpiry(expiry)),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// humanizeExpiry renders whole minutes, dropping a partial minute so the
// mail never promises more time than the code has. Sub-minute expiries are
// shown in seconds.
func humanizeExpiry(d time.Duration) string {
	if d < time.Minute {
		n := max(int((d+time.Second-1)/time.Second), 1)
		return plural(n, "second")
	}

	return plural(int(d/time.Minute), "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
