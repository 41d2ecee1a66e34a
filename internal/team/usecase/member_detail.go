package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/team/entity"
)

type MemberDetailInput struct {
	ID string `validate:"required,objectid"`
}

func (s *Usecase) MemberDetail(ctx context.Context, in MemberDetailInput) (*entity.Member, error) {
	ctx, span := s.startSpan(ctx, "MemberDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	m, err := s.repoDB.GetMember(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errMemberNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get team member", "id", in.ID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error fetching team member")
	}

	return m, nil
}
