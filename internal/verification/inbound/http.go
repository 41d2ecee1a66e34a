package inbound

import (
	"context"
	"net/http"

	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/verification/usecase"
)

type uc interface {
	OTPSend(ctx context.Context, in usecase.OTPSendInput) error
	OTPVerify(ctx context.Context, in usecase.OTPVerifyInput) (*usecase.OTPVerifyOutput, error)
}

// PublicEndpoints are reachable without a session token.
var PublicEndpoints = map[string][]string{
	http.MethodPost: {
		"/api/otp/send-otp",
		"/api/otp/verify-otp",
		"/otp/send",
		"/otp/verify",
	},
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/otp/send-otp", end.OTPSend)
	r.POST("/api/otp/verify-otp", end.OTPVerify)

	// short aliases
	r.POST("/otp/send", end.OTPSend)
	r.POST("/otp/verify", end.OTPVerify)
}
