package inbound

import (
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/team/usecase"
)

// HTTPEndpoint exposes team member CRUD handlers.
type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) MemberCreate(r *router.Request) (any, error) {
	var req MemberCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	m, err := h.uc.MemberCreate(r.Context(), usecase.MemberCreateInput{
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

	return MemberCreateResponse{MemberResponse: toMemberResponse(*m)}, nil
}

func (h *HTTPEndpoint) MemberList(r *router.Request) (any, error) {
	members, err := h.uc.MemberList(r.Context())
	if err != nil {
		return nil, err
	}

	resp := make(MemberListResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}

	return resp, nil
}

// MemberDetail also answers GET /api/team/all.
func (h *HTTPEndpoint) MemberDetail(r *router.Request) (any, error) {
	id := r.GetParam("id")
	if id == "all" {
		return h.MemberList(r)
	}

	m, err := h.uc.MemberDetail(r.Context(), usecase.MemberDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toMemberResponse(*m), nil
}

func (h *HTTPEndpoint) MemberUpdate(r *router.Request) (any, error) {
	var req MemberUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	m, err := h.uc.MemberUpdate(r.Context(), usecase.MemberUpdateInput{
		ID:              r.GetParam("id"),
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

	return MemberUpdateResponse{MemberResponse: toMemberResponse(*m)}, nil
}

func (h *HTTPEndpoint) MemberDelete(r *router.Request) (any, error) {
	if err := h.uc.MemberDelete(r.Context(), usecase.MemberDeleteInput{ID: r.GetParam("id")}); err != nil {
		return nil, err
	}

	return MemberDeleteResponse{}, nil
}
