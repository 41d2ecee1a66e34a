package verification

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/clock"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/goroutine"
	"github.com/worknest/worknest-api/internal/pkg/hash"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/jwt"
	"github.com/worknest/worknest-api/internal/pkg/mail"
	"github.com/worknest/worknest-api/internal/pkg/messaging"
	"github.com/worknest/worknest-api/internal/pkg/otp"
	"github.com/worknest/worknest-api/internal/pkg/router"
	"github.com/worknest/worknest-api/internal/pkg/validator"
	"github.com/worknest/worknest-api/internal/verification/inbound"
	"github.com/worknest/worknest-api/internal/verification/outbound/db"
	"github.com/worknest/worknest-api/internal/verification/outbound/email"
	"github.com/worknest/worknest-api/internal/verification/outbound/mq"
	"github.com/worknest/worknest-api/internal/verification/usecase"
	"go.mongodb.org/mongo-driver/mongo"
)

// PublicEndpoints lists the routes this module serves without authentication.
var PublicEndpoints = inbound.PublicEndpoints

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	Database   *mongo.Database            `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbOTP := db.NewDB(dep.Database, dep.Instrument)
	ctx, cancel := context.WithTimeout(dep.Ctx, 10*time.Second)
	defer cancel()
	if err := dbOTP.EnsureIndexes(ctx); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbOTP,
		RepoMail:      email.New(dep.Mail, dep.Config.GetString("modules.verification.mail_from"), dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Validator:     dep.Validator,
		Hash:          dep.Bcrypt,
		OTP:           dep.OTP,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
		Options: usecase.Options{
			Expiry:        dep.Config.GetMinute("modules.verification.otp_expiry_minutes"),
			MaxAttempts:   dep.Config.GetInt("modules.verification.max_attempts"),
			GenericErrors: dep.Config.GetBool("modules.verification.generic_errors"),
		},
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
