package inbound

import (
	"net/http"
	"time"

	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectCreateRequest struct {
	Name        string    `json:"name"`
	TotalBudget float64   `json:"totalBudget"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TeamMembers []string  `json:"teamMembers"`
	Status      string    `json:"status"`
}

type ProjectUpdateRequest struct {
	Name        *string    `json:"name"`
	TotalBudget *float64   `json:"totalBudget"`
	TotalPaid   *float64   `json:"totalPaid"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TeamMembers *[]string  `json:"teamMembers"`
	Status      *string    `json:"status"`
}

type ProjectAddMemberRequest struct {
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Role            string     `json:"role"`
	TotalAmount     float64    `json:"totalAmount"`
	PaidAmount      float64    `json:"paidAmount"`
	LastPaymentDate *time.Time `json:"lastPaymentDate"`
}

type ProjectUpdateStatusRequest struct {
	Status string `json:"status"`
}

type ProjectUpdatePaidAmountRequest struct {
	AmountPaid float64 `json:"amountPaid"`
}

type MemberSummaryResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ProjectResponse struct {
	ID           string                  `json:"_id"`
	Name         string                  `json:"name"`
	TotalBudget  float64                 `json:"totalBudget"`
	TotalPaid    float64                 `json:"totalPaid"`
	TotalPending float64                 `json:"totalPending"`
	StartDate    time.Time               `json:"startDate"`
	EndDate      time.Time               `json:"endDate"`
	TeamMembers  []MemberSummaryResponse `json:"teamMembers"`
	Status       string                  `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

func toProjectResponse(p entity.Project) ProjectResponse {
	members := make([]MemberSummaryResponse, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, MemberSummaryResponse{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role})
	}

	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		TotalBudget:  p.TotalBudget,
		TotalPaid:    p.TotalPaid,
		TotalPending: p.TotalPending,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		TeamMembers:  members,
		Status:       p.Status.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type ProjectCreateResponse struct {
	ProjectResponse
}

func (ProjectCreateResponse) Message() string { return "Project created successfully" }
func (ProjectCreateResponse) StatusCode() int { return http.StatusCreated }

type ProjectListResponse []ProjectResponse

func (ProjectListResponse) Message() string { return "Projects fetched successfully" }

type ProjectDetailResponse struct {
	ProjectResponse
}

func (ProjectDetailResponse) Message() string { return "Project fetched successfully" }

type ProjectUpdateResponse struct {
	ProjectResponse
}

func (ProjectUpdateResponse) Message() string { return "Project updated successfully" }

type ProjectDeleteResponse struct{}

func (ProjectDeleteResponse) Message() string { return "Project deleted successfully" }

func (ProjectDeleteResponse) Envelope() map[string]any { return map[string]any{} }

type ProjectAddMemberResponse struct {
	ProjectResponse
}

func (ProjectAddMemberResponse) Message() string { return "Team member added successfully" }

type ProjectRemoveMemberResponse struct {
	ProjectResponse
}

func (ProjectRemoveMemberResponse) Message() string { return "Team member removed successfully" }

type ProjectUpdateStatusResponse struct {
	ProjectResponse
}

func (ProjectUpdateStatusResponse) Message() string { return "Project status updated successfully" }

type ProjectUpdatePaidAmountResponse struct {
	ProjectResponse
}

func (ProjectUpdatePaidAmountResponse) Message() string { return "Paid amount updated successfully" }
