package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectUpdateStatusInput struct {
	ProjectID string `validate:"required,objectid"`
	Status    string `validate:"required,projectstatus"`
}

func (s *Usecase) ProjectUpdateStatus(ctx context.Context, in ProjectUpdateStatusInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectUpdateStatus")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateProjectStatus(ctx, in.ProjectID, entity.Status(in.Status), s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update project status", "project_id", in.ProjectID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error updating project status")
	}

	return s.reload(ctx, in.ProjectID)
}
