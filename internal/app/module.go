package app

import (
	"log/slog"
	"os"

	"github.com/worknest/worknest-api/internal/project"
	"github.com/worknest/worknest-api/internal/team"
	"github.com/worknest/worknest-api/internal/verification"
)

func (a *App) initModules() {
	if err := verification.New(verification.Dependency{
		Ctx:        a.ctx,
		Database:   a.mongo.Database(),
		Goroutine:  a.goroutine,
		Router:     a.router,
		Messaging:  a.messaging,
		Mail:       a.mail,
		Config:     a.config,
		Instrument: a.ins,
		Bcrypt:     a.bcrypt,
		OTP:        a.otp,
		Clock:      a.clock,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module verification", "error", err)
		os.Exit(1)
	}

	if err := team.New(team.Dependency{
		Ctx:         a.ctx,
		Database:    a.mongo.Database(),
		Router:      a.router,
		Idempotency: a.idemp,
		Config:      a.config,
		Instrument:  a.ins,
		Clock:       a.clock,
		Validator:   a.validator,
	}); err != nil {
		slog.Error("failed to init module team", "error", err)
		os.Exit(1)
	}

	if err := project.New(project.Dependency{
		Ctx:         a.ctx,
		Database:    a.mongo.Database(),
		Router:      a.router,
		Idempotency: a.idemp,
		Config:      a.config,
		Instrument:  a.ins,
		Clock:       a.clock,
		Validator:   a.validator,
	}); err != nil {
		slog.Error("failed to init module project", "error", err)
		os.Exit(1)
	}
}
