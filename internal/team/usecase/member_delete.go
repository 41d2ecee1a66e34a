package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
)

type MemberDeleteInput struct {
	ID string `validate:"required,objectid"`
}

func (s *Usecase) MemberDelete(ctx context.Context, in MemberDeleteInput) error {
	ctx, span := s.startSpan(ctx, "MemberDelete")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteMember(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return errMemberNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete team member", "id", in.ID, "error", err)
		return goerror.NewServerMessage(err, "Error removing team member")
	}

	return nil
}
