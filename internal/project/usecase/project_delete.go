package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
)

type ProjectDeleteInput struct {
	ID string `validate:"required,objectid"`
}

func (s *Usecase) ProjectDelete(ctx context.Context, in ProjectDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ProjectDelete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteProject(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete project", "project_id", in.ID, "error", err)
		return goerror.NewServerMessage(err, "Error deleting project")
	}

	return nil
}
