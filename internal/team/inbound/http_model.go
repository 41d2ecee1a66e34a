package inbound

import (
	"net/http"
	"time"

	"github.com/worknest/worknest-api/internal/team/entity"
)

type MemberCreateRequest struct {
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	TotalAmount     float64    `json:"totalAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
}

type MemberUpdateRequest struct {
	Name            *string    `json:"name"`
	Phone           *string    `json:"phone"`
	Email           *string    `json:"email"`
	Role            *string    `json:"role"`
	TotalAmount     *float64   `json:"totalAmount"`
	PaidAmount      *float64   `json:"paidAmount"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
}

type MemberResponse struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	TotalAmount     float64    `json:"totalAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toMemberResponse(m entity.Member) MemberResponse {
	return MemberResponse{
		ID:              m.ID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		Role:            m.Role,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		LastPaymentDate: m.LastPaymentDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type MemberCreateResponse struct {
	MemberResponse
}

func (MemberCreateResponse) Message() string { return "Team member added successfully" }
func (MemberCreateResponse) StatusCode() int { return http.StatusCreated }

type MemberUpdateResponse struct {
	MemberResponse
}

func (MemberUpdateResponse) Message() string { return "Team member updated successfully" }

type MemberListResponse []MemberResponse

func (MemberListResponse) Message() string { return "Team members fetched successfully" }

type MemberDeleteResponse struct{}

func (MemberDeleteResponse) Message() string { return "Team member removed successfully" }

func (MemberDeleteResponse) Envelope() map[string]any { return map[string]any{} }
