package entity

import (
	"errors"
	"time"
)

var (
	ErrOTPNotFound         = errors.New("otp record not found")
	ErrOTPExpired          = errors.New("otp record expired")
	ErrOTPAttemptsExceeded = errors.New("otp attempts exceeded")
	ErrOTPInvalidCode      = errors.New("otp code mismatch")
)

// OTPRecord is the single pending one-time password for an email.
type OTPRecord struct {
	Email      string
	SecretHash string
	CreatedAt  time.Time
	Attempts   int
}

// Expired reports whether the record is older than window at now.
// A record exactly window old is still valid.
func (r OTPRecord) Expired(now time.Time, window time.Duration) bool {
	return now.Sub(r.CreatedAt) > window
}

// Exhausted reports whether no verification attempts are left.
func (r OTPRecord) Exhausted(maxAttempts int) bool {
	return r.Attempts >= maxAttempts
}

// FailureMessage returns the client-facing message for a verification failure.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, ErrOTPExpired):
		return "OTP has expired"
	case errors.Is(err, ErrOTPAttemptsExceeded):
		return "Too many failed attempts. Please request a new OTP."
	case errors.Is(err, ErrOTPInvalidCode):
		return "Invalid OTP"
	default:
		return GenericFailureMessage
	}
}

// GenericFailureMessage is returned for every verification failure when
// specific messages are turned off.
const GenericFailureMessage = "Invalid or expired OTP"
