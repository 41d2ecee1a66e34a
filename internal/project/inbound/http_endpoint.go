package inbound

import (
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/project/usecase"
)

var errEndpointNotFound = goerror.NewBusiness("endpoint not found", goerror.CodeNotFound)

// HTTPEndpoint exposes project handlers.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ProjectCreate(r *router.Request) (any, error) {
	var req ProjectCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.ProjectCreate(r.Context(), usecase.ProjectCreateInput{
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamMembers: req.TeamMembers,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}

	return ProjectCreateResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectList(r *router.Request) (any, error) {
	projects, err := h.uc.ProjectList(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make(ProjectListResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	return resp, nil
}

func (h *HTTPEndpoint) ProjectDetail(r *router.Request) (any, error) {
	p, err := h.uc.ProjectDetail(r.Context(), usecase.ProjectDetailInput{ID: r.GetParam("id")})
	if err != nil {
		return nil, err
	}

	return ProjectDetailResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectDelete(r *router.Request) (any, error) {
	if err := h.uc.ProjectDelete(r.Context(), usecase.ProjectDeleteInput{ID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return ProjectDeleteResponse{}, nil
}

// ProjectAction serves PUT /api/projects/update/:id and the
// PUT /api/projects/:projectId/<action> family.
func (h *HTTPEndpoint) ProjectAction(r *router.Request) (any, error) {
	projectID, action := r.GetParam("projectId"), r.GetParam("action")
	if projectID == "update" {
		return h.ProjectUpdate(r, action)
	}

	switch action {
	case "add-team-members":
		return h.ProjectAddMember(r, projectID)
	case "update-status":
		return h.ProjectUpdateStatus(r, projectID)
	case "update-paid-amount":
		return h.ProjectUpdatePaidAmount(r, projectID)
	default:
		return nil, errEndpointNotFound
	}
}

// ProjectMemberAction serves PUT /api/projects/:projectId/remove-team-member/:memberId.
func (h *HTTPEndpoint) ProjectMemberAction(r *router.Request) (any, error) {
	if r.GetParam("action") != "remove-team-member" {
		return nil, errEndpointNotFound
	}

	p, err := h.uc.ProjectRemoveMember(r.Context(), usecase.ProjectRemoveMemberInput{
		ProjectID: r.GetParam("projectId"),
		MemberID:  r.GetParam("memberId"),
	})
	if err != nil {
		return nil, err
	}

	return ProjectRemoveMemberResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectUpdate(r *router.Request, id string) (any, error) {
	var req ProjectUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.ProjectUpdate(r.Context(), usecase.ProjectUpdateInput{
		ID:          id,
		Name:        req.Name,
		TotalBudget: req.TotalBudget,
		TotalPaid:   req.TotalPaid,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamMembers: req.TeamMembers,
		Status:      req.Status,
	})
	if err != nil {
		return nil, err
	}

	return ProjectUpdateResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectAddMember(r *router.Request, projectID string) (any, error) {
	var req ProjectAddMemberRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.ProjectAddMember(r.Context(), usecase.ProjectAddMemberInput{
		ProjectID:       projectID,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Role:            req.Role,
		TotalAmount:     req.TotalAmount,
		PaidAmount:      req.PaidAmount,
		LastPaymentDate: req.LastPaymentDate,
	})
	if err != nil {
		return nil, err
	}

	return ProjectAddMemberResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectUpdateStatus(r *router.Request, projectID string) (any, error) {
	var req ProjectUpdateStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.ProjectUpdateStatus(r.Context(), usecase.ProjectUpdateStatusInput{
		ProjectID: projectID,
		Status:    req.Status,
	})
	if err != nil {
		return nil, err
	}

	return ProjectUpdateStatusResponse{ProjectResponse: toProjectResponse(*p)}, nil
}

func (h *HTTPEndpoint) ProjectUpdatePaidAmount(r *router.Request, projectID string) (any, error) {
	var req ProjectUpdatePaidAmountRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.ProjectUpdatePaidAmount(r.Context(), usecase.ProjectUpdatePaidAmountInput{
		ProjectID:  projectID,
		AmountPaid: req.AmountPaid,
	})
	if err != nil {
		return nil, err
	}

	return ProjectUpdatePaidAmountResponse{ProjectResponse: toProjectResponse(*p)}, nil
}
