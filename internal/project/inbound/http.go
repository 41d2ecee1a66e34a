package inbound

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/project/entity"
	"github.com/worknest/worknest-api/internal/project/usecase"
)

type uc interface {
	ProjectCreate(ctx context.Context, in usecase.ProjectCreateInput) (*entity.Project, error)
	ProjectList(ctx context.Context) ([]entity.Project, error)
	ProjectDetail(ctx context.Context, in usecase.ProjectDetailInput) (*entity.Project, error)
	ProjectUpdate(ctx context.Context, in usecase.ProjectUpdateInput) (*entity.Project, error)
	ProjectDelete(ctx context.Context, in usecase.ProjectDeleteInput) error
	ProjectAddMember(ctx context.Context, in usecase.ProjectAddMemberInput) (*entity.Project, error)
	ProjectRemoveMember(ctx context.Context, in usecase.ProjectRemoveMemberInput) (*entity.Project, error)
	ProjectUpdateStatus(ctx context.Context, in usecase.ProjectUpdateStatusInput) (*entity.Project, error)
	ProjectUpdatePaidAmount(ctx context.Context, in usecase.ProjectUpdatePaidAmountInput) (*entity.Project, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, idemp idempotency.Idempotency, idempTTL time.Duration) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/projects/add", end.ProjectCreate, router.Idempotent(idemp, idempTTL))
	r.GET("/api/projects", end.ProjectList)
	r.GET("/api/projects/:id", end.ProjectDetail)
	r.DELETE("/api/projects/delete/:id", end.ProjectDelete)

	// /update/:id shares its first segment with /:projectId/..., which
	// httprouter rejects. Both shapes land in ProjectAction.
	r.PUT("/api/projects/:projectId/:action", end.ProjectAction)
	r.PUT("/api/projects/:projectId/:action/:memberId", end.ProjectMemberAction)
}
