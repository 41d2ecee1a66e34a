package inbound

type OTPSendRequest struct {
	Email string `json:"email"`
}

type OTPSendResponse struct{}

func (OTPSendResponse) Message() string {
	return "OTP sent successfully"
}

// Envelope puts the body fields next to status and message, so an empty
// response renders as {"status":"success","message":"OTP sent successfully"}.
func (OTPSendResponse) Envelope() map[string]any {
	return map[string]any{}
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type OTPVerifyResponse struct {
	Token string `json:"token"`
}

func (OTPVerifyResponse) Message() string {
	return "OTP verified successfully"
}

func (r OTPVerifyResponse) Envelope() map[string]any {
	return map[string]any{"token": r.Token}
}
