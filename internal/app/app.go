package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/goroutine"
	"github.com/worknest/worknest-api/internal/pkg/hash"
	"github.com/worknest/worknest-api/internal/pkg/idempotency"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/jwt"
	"github.com/worknest/worknest-api/internal/pkg/mail"
	"github.com/worknest/worknest-api/internal/pkg/messaging"
	"github.com/worknest/worknest-api/internal/pkg/mongodb"
	"github.com/worknest/worknest-api/internal/pkg/otp"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/pkg/uid"
	"github.com/worknest/worknest-api/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	mongo     *mongodb.Client
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
