package inbound

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/team/entity"
	"github.com/worknest/worknest-api/internal/team/usecase"
)

type uc interface {
	MemberCreate(ctx context.Context, in usecase.MemberCreateInput) (*entity.Member, error)
	MemberList(ctx context.Context) ([]entity.Member, error)
	MemberDetail(ctx context.Context, in usecase.MemberDetailInput) (*entity.Member, error)
	MemberUpdate(ctx context.Context, in usecase.MemberUpdateInput) (*entity.Member, error)
	MemberDelete(ctx context.Context, in usecase.MemberDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, idemp idempotency.Idempotency, idempTTL time.Duration) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/team/add", end.MemberCreate, router.Idempotent(idemp, idempTTL))
	// httprouter cannot hold /all and /:id side by side, MemberDetail serves both.
	r.GET("/api/team/:id", end.MemberDetail)
	r.PUT("/api/team/update/:id", end.MemberUpdate)
	r.DELETE("/api/team/remove/:id", end.MemberDelete)
}
