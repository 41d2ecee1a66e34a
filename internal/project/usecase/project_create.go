package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectCreateInput struct {
	Name        string    `validate:"required,max=200"`
	TotalBudget float64   `validate:"gte=0"`
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required"`
	TeamMembers []string  `validate:"omitempty,dive,objectid"`
	Status      string    `validate:"omitempty,projectstatus"`
}

func (s *Usecase) ProjectCreate(ctx context.Context, in ProjectCreateInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectCreate")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, errInvalidProjectRange
	}

	members, err := s.ensureMembers(ctx, in.TeamMembers)
	if err != nil {
		return nil, err
	}

	status := entity.Status(in.Status)
	if status == "" {
		status = entity.StatusPending
	}

	id, err := s.repoDB.CreateProject(ctx, entity.CreateProject{
		Name:          in.Name,
		TotalBudget:   in.TotalBudget,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		TeamMemberIDs: members,
		Status:        status,
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create project", "name", in.Name, "error", err)
		return nil, goerror.NewServerMessage(err, "Error creating project")
	}

	return s.reload(ctx, id)
}
