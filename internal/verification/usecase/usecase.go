package usecase

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/goroutine"
	"github.com/worknest/worknest-api/internal/pkg/hash"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/jwt"
	"github.com/worknest/worknest-api/internal/pkg/otp"
	"github.com/worknest/worknest-api/internal/pkg/validator"
	"github.com/worknest/worknest-api/internal/verification/entity"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultExpiry      = 5 * time.Minute
	DefaultMaxAttempts = 3
)

type repoDB interface {
	SaveOTP(ctx context.Context, rec entity.OTPRecord) error
	GetOTP(ctx context.Context, email string) (*entity.OTPRecord, error)
	ReserveOTPAttempt(ctx context.Context, email string, maxAttempts int) error
	DeleteOTP(ctx context.Context, email string) error
	DeleteOTPsByEmail(ctx context.Context, email string) error

	UpsertVerifiedUser(ctx context.Context, u entity.VerifiedUser) error
}

type repoMail interface {
	SendOTP(ctx context.Context, email, code string, expiry time.Duration) error
}

type repoMessaging interface {
	PublishUserVerified(ctx context.Context, msg UserVerifiedEvent) error
}

// Options are read once at startup.
type Options struct {
	Expiry        time.Duration
	MaxAttempts   int
	GenericErrors bool
}

type Usecase struct {
	repoDB        repoDB
	repoMail      repoMail
	repoMessaging repoMessaging

	validator validator.Validator
	hash      hash.Hash
	otp       otp.Generator
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
	opts      Options
}

type Dependency struct {
	RepoDB        repoDB
	RepoMail      repoMail
	RepoMessaging repoMessaging

	Validator  validator.Validator
	Hash       hash.Hash
	OTP        otp.Generator
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
	Options    Options
}

func New(dep Dependency) *Usecase {
	opts := dep.Options
	if opts.Expiry <= 0 {
		opts.Expiry = DefaultExpiry
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMail:      dep.RepoMail,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		hash:          dep.Hash,
		otp:           dep.OTP,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		opts:          opts,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}
