package usecase

import "time"

type UserVerifiedEvent struct {
	Email      string
	VerifiedAt time.Time
}
