package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/validator"
	"github.com/worknest/worknest-api/internal/project/entity"
	"go.opentelemetry.io/otel/trace"
)

var (
	errProjectNotFound     = goerror.NewBusiness("Project not found", goerror.CodeNotFound)
	errInvalidTeamMembers  = goerror.NewBusiness("Invalid team members", goerror.CodeBadRequest)
	errInvalidProjectRange = goerror.NewInvalidInput(nil, "end_date", "end_date must not be before start_date")
)

type repoDB interface {
	CreateProject(ctx context.Context, p entity.CreateProject) (string, error)
	ListProjects(ctx context.Context) ([]entity.Project, error)
	GetProject(ctx context.Context, id string) (*entity.Project, error)
	UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) error
	DeleteProject(ctx context.Context, id string) error

	// AddProjectMember reports false when the member was already staffed.
	AddProjectMember(ctx context.Context, projectID, memberID string, at time.Time) (bool, error)
	RemoveProjectMember(ctx context.Context, projectID, memberID string, at time.Time) error
	UpdateProjectStatus(ctx context.Context, projectID string, status entity.Status, at time.Time) error
	// AddProjectPayment adds amount to the paid total and recomputes the
	// pending total in the same write.
	AddProjectPayment(ctx context.Context, projectID string, amount float64, at time.Time) error

	CountMembers(ctx context.Context, ids []string) (int, error)
	FindMemberByContact(ctx context.Context, email, phone string) (string, error)
	CreateMember(ctx context.Context, m entity.NewMember) (string, error)
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
	return s.ins.Tracer("project.usecase").Start(ctx, name)
}

// reload returns the populated project after a write.
func (s *Usecase) reload(ctx context.Context, id string) (*entity.Project, error) {
	p, err := s.repoDB.GetProject(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get project", "project_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return p, nil
}

// ensureMembers checks that every id names an existing team member and
// returns the ids with duplicates removed, order kept.
func (s *Usecase) ensureMembers(ctx context.Context, ids []string) ([]string, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	if len(uniq) == 0 {
		return uniq, nil
	}

	n, err := s.repoDB.CountMembers(ctx, uniq)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count team members", "error", err)
		return nil, goerror.NewServer(err)
	}
	if n != len(uniq) {
		slog.WarnContext(ctx, "project references unknown team members", "requested", len(uniq), "found", n)
		return nil, errInvalidTeamMembers
	}

	return uniq, nil
}
