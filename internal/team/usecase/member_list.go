package usecase

import (
	"context"
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/team/entity"
)

func (s *Usecase) MemberList(ctx context.Context) ([]entity.Member, error) {
	ctx, span := s.startSpan(ctx, "MemberList")
	defer span.End()

	members, err := s.repoDB.ListMembers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list team members", "error", err)
		return nil, goerror.NewServerMessage(err, "Error fetching team members")
	}

	return members, nil
}
