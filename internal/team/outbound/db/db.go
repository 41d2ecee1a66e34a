package db

import (
	"context"
	"errors"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/shared/collection"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type DB struct {
	members  *mongo.Collection
	projects *mongo.Collection
	ins      instrument.Instrumentation
}

func NewDB(db *mongo.Database, ins instrument.Instrumentation) *DB {
	return &DB{
		members:  db.Collection(collection.TeamMembers),
		projects: db.Collection(collection.Projects),
		ins:      ins,
	}
}

// EnsureIndexes makes email and phone unique across team members.
func (s *DB) EnsureIndexes(ctx context.Context) (err error) {
	ctx, span := s.startSpan(ctx, "EnsureIndexes")
	defer func() { s.endSpan(span, err) }()

	_, err = s.members.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
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

// objectID parses a hex id. Ids that cannot exist are reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, goerror.ErrNotFound
	}

	return oid, nil
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("team.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
