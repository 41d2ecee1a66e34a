package project

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/pkg/validator"
	"github.com/worknest/worknest-api/internal/project/inbound"
	"github.com/worknest/worknest-api/internal/project/outbound/db"
	"github.com/worknest/worknest-api/internal/project/usecase"
	"go.mongodb.org/mongo-driver/mongo"
)

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	Database    *mongo.Database            `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbProject := db.NewDB(dep.Database, dep.Instrument)
	ctx, cancel := context.WithTimeout(dep.Ctx, 10*time.Second)
	defer cancel()
	if err := dbProject.EnsureIndexes(ctx); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbProject,
		Validator:  dep.Validator,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Idempotency, dep.Config.GetHour("app.idempotency.ttl_hours"))

	return nil
}
