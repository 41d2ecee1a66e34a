package entity

import "time"

type Status string

const (
	StatusPending   Status = "Pending"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
)

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	default:
		return false
	}
}

// Project tracks a budget, the money paid against it and the members staffed
// on it. TotalPending is always TotalBudget - TotalPaid.
type Project struct {
	ID            string
	Name          string
	TotalBudget   float64
	TotalPaid     float64
	TotalPending  float64
	StartDate     time.Time
	EndDate       time.Time
	TeamMemberIDs []string
	// Members is the populated view of TeamMemberIDs. Ids whose member no
	// longer exists are absent.
	Members   []MemberSummary
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether memberID is staffed on the project.
func (p Project) HasMember(memberID string) bool {
	for _, id := range p.TeamMemberIDs {
		if id == memberID {
			return true
		}
	}

	return false
}

type MemberSummary struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type CreateProject struct {
	Name          string
	TotalBudget   float64
	StartDate     time.Time
	EndDate       time.Time
	TeamMemberIDs []string
	Status        Status
	CreatedAt     time.Time
}

// ProjectPatch lists the fields to change; nil fields are left untouched.
type ProjectPatch struct {
	Name          *string
	TotalBudget   *float64
	TotalPaid     *float64
	StartDate     *time.Time
	EndDate       *time.Time
	TeamMemberIDs *[]string
	Status        *Status
	UpdatedAt     time.Time
}

// NewMember is the contact card used to find or create a team member when
// staffing a project.
type NewMember struct {
	Name            string
	Phone           string
	Email           string
	Role            string
	TotalAmount     float64
	PaidAmount      float64
	LastPaymentDate *time.Time
	CreatedAt       time.Time
}
