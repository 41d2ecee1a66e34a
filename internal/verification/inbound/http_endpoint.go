package inbound

import (
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/verification/usecase"
)

// HTTPEndpoint exposes the OTP issuance and verification handlers.
type HTTPEndpoint struct {
	uc uc
}

// OTPSend mails a fresh one-time password to the given email.
func (h *HTTPEndpoint) OTPSend(r *router.Request) (any, error) {
	var req OTPSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.OTPSend(r.Context(), usecase.OTPSendInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return OTPSendResponse{}, nil
}

// OTPVerify exchanges a valid one-time password for a session token.
func (h *HTTPEndpoint) OTPVerify(r *router.Request) (any, error) {
	var req OTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OTPVerify(r.Context(), usecase.OTPVerifyInput{
		Email: req.Email,
		Code:  req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return OTPVerifyResponse{Token: resp.Token}, nil
}
