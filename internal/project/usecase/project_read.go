package usecase

import (
	"context"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectDetailInput struct {
	ID string `validate:"required,objectid"`
}

func (s *Usecase) ProjectList(ctx context.Context) ([]entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectList")
	defer span.End()

	projects, err := s.repoDB.ListProjects(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list projects", "error", err)
		return nil, goerror.NewServerMessage(err, "Error fetching projects")
	}

	return projects, nil
}

func (s *Usecase) ProjectDetail(ctx context.Context, in ProjectDetailInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.reload(ctx, in.ID)
}
