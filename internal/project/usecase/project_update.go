package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectUpdateInput struct {
	ID          string     `validate:"required,objectid"`
	Name        *string    `validate:"omitempty,min=1,max=200"`
	TotalBudget *float64   `validate:"omitempty,gte=0"`
	TotalPaid   *float64   `validate:"omitempty,gte=0"`
	StartDate   *time.Time
	EndDate     *time.Time
	TeamMembers *[]string `validate:"omitempty,dive,objectid"`
	Status      *string   `validate:"omitempty,projectstatus"`
}

// ProjectUpdate applies a partial update. Pending is recomputed from the
// stored budget and paid totals whichever of them changes.
func (s *Usecase) ProjectUpdate(ctx context.Context, in ProjectUpdateInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	current, err := s.reload(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	start, end := current.StartDate, current.EndDate
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil {
		end = *in.EndDate
	}
	if end.Before(start) {
		return nil, errInvalidProjectRange
	}

	patch := entity.ProjectPatch{
		Name:        in.Name,
		TotalBudget: in.TotalBudget,
		TotalPaid:   in.TotalPaid,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		UpdatedAt:   s.clock.Now(),
	}
	if in.Status != nil {
		st := entity.Status(*in.Status)
		patch.Status = &st
	}
	if in.TeamMembers != nil {
		members, err := s.ensureMembers(ctx, *in.TeamMembers)
		if err != nil {
			return nil, err
		}
		patch.TeamMemberIDs = &members
	}

	err = s.repoDB.UpdateProject(ctx, in.ID, patch)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update project", "project_id", in.ID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error updating project")
	}

	return s.reload(ctx, in.ID)
}
