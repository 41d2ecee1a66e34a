package usecase

import (
	"context"

	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/validator"
	"github.com/worknest/worknest-api/internal/team/entity"
	"go.opentelemetry.io/otel/trace"
)

var errMemberNotFound = goerror.NewBusiness("Team member not found", goerror.CodeNotFound)

type repoDB interface {
	CreateMember(ctx context.Context, m entity.Member) (*entity.Member, error)
	ListMembers(ctx context.Context) ([]entity.Member, error)
	GetMember(ctx context.Context, id string) (*entity.Member, error)
	UpdateMember(ctx context.Context, id string, patch entity.MemberPatch) (*entity.Member, error)
	// DeleteMember removes the member and its id from every project.
	DeleteMember(ctx context.Context, id string) error
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("team.usecase").Start(ctx, name)
}
