package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/verification/entity"
)

type OTPVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,otpcode"`
}

type OTPVerifyOutput struct {
	Token string
}

// OTPVerify consumes the pending code for the email. Expiry and the attempt
// budget are checked before the code so a dead record never reaches the hash
// comparison, and every comparison first reserves one attempt from the
// stored budget.
func (s *Usecase) OTPVerify(ctx context.Context, in OTPVerifyInput) (*OTPVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OTPVerify")
	defer span.End()

	in.Email = strings.TrimSpace(in.Email)
	in.Code = strings.TrimSpace(in.Code)
	if in.Email == "" || in.Code == "" {
		return nil, goerror.NewInvalidInputMessage("Email and OTP are required", missingFields(in)...)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	rec, err := s.repoDB.GetOTP(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record not found", "email", in.Email)
		return nil, s.failure(entity.ErrOTPNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if rec.Expired(s.clock.Now(), s.opts.Expiry) {
		if err := s.discard(ctx, in.Email); err != nil {
			return nil, err
		}
		slog.WarnContext(ctx, "otp record expired", "email", in.Email, "created_at", rec.CreatedAt)
		return nil, s.failure(entity.ErrOTPExpired)
	}

	if rec.Exhausted(s.opts.MaxAttempts) {
		if err := s.discard(ctx, in.Email); err != nil {
			return nil, err
		}
		slog.WarnContext(ctx, "otp attempts exceeded", "email", in.Email, "attempts", rec.Attempts)
		return nil, s.failure(entity.ErrOTPAttemptsExceeded)
	}

	err = s.repoDB.ReserveOTPAttempt(ctx, in.Email, s.opts.MaxAttempts)
	if errors.Is(err, goerror.ErrConflict) {
		if err := s.discard(ctx, in.Email); err != nil {
			return nil, err
		}
		slog.WarnContext(ctx, "otp attempts exceeded", "email", in.Email, "max_attempts", s.opts.MaxAttempts)
		return nil, s.failure(entity.ErrOTPAttemptsExceeded)
	}
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record consumed concurrently", "email", in.Email)
		return nil, s.failure(entity.ErrOTPNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reserve otp attempt", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.hash.Verify(rec.SecretHash, in.Code) {
		return nil, s.failure(entity.ErrOTPInvalidCode)
	}

	// The user is recorded before the code is consumed so a failed write
	// leaves the code usable for a retry.
	verifiedAt := s.clock.Now()
	if err := s.repoDB.UpsertVerifiedUser(ctx, entity.VerifiedUser{Email: in.Email, VerifiedAt: verifiedAt}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert verified user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Only the caller that removes the record gets a token.
	err = s.repoDB.DeleteOTP(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record consumed concurrently", "email", in.Email)
		return nil, s.failure(entity.ErrOTPNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	ev := UserVerifiedEvent{Email: in.Email, VerifiedAt: verifiedAt}
	s.goroutine.Go(ctx, "publish-user-verified", func(ctx context.Context) error {
		return s.repoMessaging.PublishUserVerified(ctx, ev)
	})

	return &OTPVerifyOutput{Token: token}, nil
}

func missingFields(in OTPVerifyInput) []string {
	var kv []string
	if in.Email == "" {
		kv = append(kv, "email", "is required")
	}
	if in.Code == "" {
		kv = append(kv, "otp", "is required")
	}

	return kv
}

func (s *Usecase) discard(ctx context.Context, email string) error {
	err := s.repoDB.DeleteOTP(ctx, email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo delete otp", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) failure(cause error) error {
	msg := entity.FailureMessage(cause)
	if s.opts.GenericErrors {
		msg = entity.GenericFailureMessage
	}

	return goerror.NewBusinessCause(cause, msg, goerror.CodeBadRequest)
}
