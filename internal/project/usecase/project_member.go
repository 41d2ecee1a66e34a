package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
)

type ProjectAddMemberInput struct {
	ProjectID       string  `validate:"required,objectid"`
	Name            string  `validate:"required,max=100"`
	Phone           string  `validate:"required,max=20"`
	Email           string  `validate:"required,email"`
	Role            string  `validate:"required,max=100"`
	TotalAmount     float64 `validate:"gt=0"`
	PaidAmount      float64 `validate:"gte=0"`
	LastPaymentDate *time.Time
}

// ProjectAddMember staffs a member on the project. The member is looked up by
// email or phone and created when unknown.
func (s *Usecase) ProjectAddMember(ctx context.Context, in ProjectAddMemberInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectAddMember")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	project, err := s.reload(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	memberID, err := s.findOrCreateMember(ctx, in)
	if err != nil {
		return nil, err
	}

	duplicate := goerror.NewBusiness(
		fmt.Sprintf("Member with email %s or phone %s already exists in the project.", in.Email, in.Phone),
		goerror.CodeNotAcceptable,
	)
	if project.HasMember(memberID) {
		return nil, duplicate
	}

	added, err := s.repoDB.AddProjectMember(ctx, in.ProjectID, memberID, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo add project member", "project_id", in.ProjectID, "member_id", memberID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error adding team member to project")
	}
	if !added {
		return nil, duplicate
	}

	return s.reload(ctx, in.ProjectID)
}

func (s *Usecase) findOrCreateMember(ctx context.Context, in ProjectAddMemberInput) (string, error) {
	id, err := s.repoDB.FindMemberByContact(ctx, in.Email, in.Phone)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo find team member by contact", "email", in.Email, "error", err)
		return "", goerror.NewServerMessage(err, "Error adding team member to project")
	}

	id, err = s.repoDB.CreateMember(ctx, entity.NewMember{
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		Role:            in.Role,
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		LastPaymentDate: in.LastPaymentDate,
		CreatedAt:       s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		// created concurrently by another request
		id, err = s.repoDB.FindMemberByContact(ctx, in.Email, in.Phone)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create team member", "email", in.Email, "error", err)
		return "", goerror.NewServerMessage(err, "Error adding team member to project")
	}

	return id, nil
}

type ProjectRemoveMemberInput struct {
	ProjectID string `validate:"required,objectid"`
	MemberID  string `validate:"required,objectid"`
}

func (s *Usecase) ProjectRemoveMember(ctx context.Context, in ProjectRemoveMemberInput) (*entity.Project, error) {
	ctx, span := s.startSpan(ctx, "ProjectRemoveMember")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err := s.repoDB.RemoveProjectMember(ctx, in.ProjectID, in.MemberID, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProjectNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo remove project member", "project_id", in.ProjectID, "member_id", in.MemberID, "error", err)
		return nil, goerror.NewServerMessage(err, "Error removing team member")
	}

	return s.reload(ctx, in.ProjectID)
}
