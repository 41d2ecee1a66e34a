package app

import (
	"log/slog"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/router"
)

type healthResponse struct{}

func (healthResponse) Message() string { return "OK" }

func (healthResponse) Envelope() map[string]any { return map[string]any{} }

// health reports whether the database primary answers a ping.
func (a *App) health(r *router.Request) (any, error) {
	if err := a.mongo.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		return nil, goerror.NewServerMessage(err, "Database unavailable")
	}

	return healthResponse{}, nil
}
