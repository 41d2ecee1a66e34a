package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/verification/entity"
)

type OTPSendInput struct {
	Email string `validate:"required,email"`
}

// OTPSend replaces any pending code for the email with a fresh one and mails
// it. The stored record is kept when delivery fails; a retry supersedes it.
func (s *Usecase) OTPSend(ctx context.Context, in OTPSendInput) error {
	ctx, span := s.startSpan(ctx, "OTPSend")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" {
		return goerror.NewInvalidInputMessage("Email is required", "email", "is required")
	}
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.DeleteOTPsByEmail(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete otp by email", "email", in.Email, "error", err)
		return goerror.NewServerMessage(err, "Failed to send OTP")
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return goerror.NewServerMessage(err, "Failed to send OTP")
	}

	secret, err := s.hash.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp", "error", err)
		return goerror.NewServerMessage(err, "Failed to send OTP")
	}

	if err := s.repoDB.SaveOTP(ctx, entity.OTPRecord{
		Email:      in.Email,
		SecretHash: string(secret),
		CreatedAt:  s.clock.Now(),
		Attempts:   0,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo save otp", "email", in.Email, "error", err)
		return goerror.NewServerMessage(err, "Failed to send OTP")
	}

	if err := s.repoMail.SendOTP(ctx, in.Email, code, s.opts.Expiry); err != nil {
		slog.ErrorContext(ctx, "failed to send otp email", "email", in.Email, "error", err)
		return goerror.NewServerMessage(err, "Failed to send OTP")
	}

	return nil
}
