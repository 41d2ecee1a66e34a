package mail

import (
	"errors"
	"strings"
)

// ErrUnknownDriver is returned by New for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown mail driver")

// Driver names accepted by New.
const (
	DriverSMTP     = "smtp"
	DriverSendGrid = "sendgrid"
)

// Config selects and configures a mail driver.
type Config struct {
	Driver   string
	SMTP     SMTPConfig
	SendGrid SendGridConfig
}

// New builds the Mail implementation named by cfg.Driver.
func New(cfg Config) (Mail, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverSMTP, "":
		return NewSMTP(cfg.SMTP)
	case DriverSendGrid:
		return NewSendGrid(cfg.SendGrid)
	default:
		return nil, ErrUnknownDriver
	}
}
