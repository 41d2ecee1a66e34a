package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectUpdatePaidAmountInput struct {
	ProjectID  string  `validate:"required,objectid"`
	AmountPaid float64 `validate:"gt=0"`
}

func (s *Usecase) ProjectUpdatePaidAmount(ctx context.Context, in ProjectUpdatePaidAmountInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectUpdatePaidAmount")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err := s.repoDB.AddProjectPayment(ctx, in.ProjectID, in.AmountPaid, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo add project payment", "project_id", in.ProjectID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error updating paid amount")
	}

	return s.reload(ctx, in.ProjectID)
}
