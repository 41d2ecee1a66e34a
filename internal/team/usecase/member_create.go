package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/team/entity"
)

type MemberCreateInput struct {
	Name            string     `validate:"required,max=100"`
	Phone           string     `validate:"required,max=20"`
	Email           string     `validate:"required,email"`
	Role            string     `validate:"required,max=100"`
	TotalAmount     float64    `validate:"gte=0"`
	PaidAmount      float64    `validate:"gte=0"`
	LastPaymentDate *time.Time
}

func (s *Usecase) MemberCreate(ctx context.Context, in MemberCreateInput) (*entity.Member, error) {
	ctx, span := s.startSpan(ctx, "MemberCreate")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	m, err := s.repoDB.CreateMember(ctx, entity.Member{
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		Role:            in.Role,
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		LastPaymentDate: in.LastPaymentDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "team member email or phone already taken", "email", in.Email, "phone", in.Phone)
		return nil, goerror.NewBusiness("Team member with this email or phone already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create team member", "email", in.Email, "error", err)
		return nil, goerror.NewServerMessage(err, "Error adding team member")
	}

	return m, nil
}
