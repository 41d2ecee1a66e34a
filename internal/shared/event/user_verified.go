package event

import "time"

const UserVerifiedDestination string = "worknest.user.verified"

type UserVerifiedMessage struct {
	Email      string    `json:"email"`
	VerifiedAt time.Time `json:"verified_at"`
}
