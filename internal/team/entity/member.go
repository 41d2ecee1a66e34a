package entity

import "time"

// Member is a person who can be staffed on projects and paid against a
// total amount.
type Member struct {
	ID              string
	Name            string
	Phone           string
	Email           string
	Role            string
	TotalAmount     float64
	PaidAmount      float64
	LastPaymentDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PendingAmount is what is still owed to the member.
func (m Member) PendingAmount() float64 {
	return m.TotalAmount - m.PaidAmount
}

// MemberPatch lists the fields to change; nil fields are left untouched.
type MemberPatch struct {
	Name            *string
	Phone           *string
	Email           *string
	Role            *string
	TotalAmount     *float64
	PaidAmount      *float64
	LastPaymentDate *time.Time
	UpdatedAt       time.Time
}
