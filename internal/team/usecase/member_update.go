package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/team/entity"
)

type MemberUpdateInput struct {
	ID              string     `validate:"required,objectid"`
	Name            *string    `validate:"omitempty,min=1,max=100"`
	Phone           *string    `validate:"omitempty,min=1,max=20"`
	Email           *string    `validate:"omitempty,email"`
	Role            *string    `validate:"omitempty,min=1,max=100"`
	TotalAmount     *float64   `validate:"omitempty,gte=0"`
	PaidAmount      *float64   `validate:"omitempty,gte=0"`
	LastPaymentDate *time.Time
}

// MemberUpdate applies a partial update and returns the stored result.
func (s *Usecase) MemberUpdate(ctx context.Context, in MemberUpdateInput) (*entity.Member, error) {
	ctx, span := s.startSpan(ctx, "MemberUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	m, err := s.repoDB.UpdateMember(ctx, in.ID, entity.MemberPatch{
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		Role:            in.Role,
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		LastPaymentDate: in.LastPaymentDate,
		UpdatedAt:       s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errMemberNotFound
	}
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Team member with this email or phone already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update team member", "id", in.ID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error updating team member")
	}

	return m, nil
}
