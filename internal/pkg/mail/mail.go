package mail

import (
	"context"
	"io"
	netmail "net/mail"
)

// Message represents an email payload.
type Message struct {
	// From is an optional explicit sender, either "addr" or "Name <addr>".
	// Drivers fall back to their configured default when empty.
	From string
	// To lists required recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the email subject line.
	Subject string
	// TextBody is the plain-text body; preferred when HTMLBody is empty.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}

// parseSender splits "Name <addr>" into its parts. A bare address is accepted.
func parseSender(from string) (name, addr string, err error) {
	a, err := netmail.ParseAddress(from)
	if err != nil {
		return "", "", err
	}

	return a.Name, a.Address, nil
}

func recipients(msg Message) []string {
	out := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	out = append(out, msg.To...)
	out = append(out, msg.Cc...)
	out = append(out, msg.Bcc...)

	return out
}
