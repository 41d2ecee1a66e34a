package entity

import "time"

// VerifiedUser marks an email as proven by a successful OTP verification.
type VerifiedUser struct {
	Email      string
	VerifiedAt time.Time
}
