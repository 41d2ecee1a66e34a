package db

import (
	"context"
	"errors"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	collectionOTPRecords = "otp_records"
	collectionUsers      = "users"
)

type DB struct {
	otps  *mongo.Collection
	users *mongo.Collection
	ins   instrument.Instrumentation
}

func NewDB(db *mongo.Database, ins instrument.Instrumentation) *DB {
	return &DB{
		otps:  db.Collection(collectionOTPRecords),
		users: db.Collection(collectionUsers),
		ins:   ins,
	}
}

// EnsureIndexes creates the unique email indexes both collections rely on.
func (s *DB) EnsureIndexes(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "EnsureIndexes")
	defer func() { s.endSpan(span, err) }()

	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err = s.otps.Indexes().CreateOne(ctx, unique); err != nil {
		return err
	}
	_, err = s.users.Indexes().CreateOne(ctx, unique)
	return err
}

// - ErrNoDocuments → goerror.ErrNotFound
// - E11000 duplicate key → goerror.ErrConflict
func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
