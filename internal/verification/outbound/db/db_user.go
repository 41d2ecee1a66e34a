package db

import (
	"context"

	"github.com/worknest/worknest-api/internal/verification/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *DB) UpsertVerifiedUser(ctx context.Context, u entity.VerifiedUser) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertVerifiedUser")
	defer func() { s.endSpan(span, err) }()

	update := bson.M{
		"$set": bson.M{
			"verified":    true,
			"verified_at": u.VerifiedAt,
			"updated_at":  u.VerifiedAt,
		},
		"$setOnInsert": bson.M{
			"created_at": u.VerifiedAt,
		},
	}

	_, err = s.users.UpdateOne(ctx, bson.M{"email": u.Email}, update, options.Update().SetUpsert(true))
	err = s.mapError(err)
	return err
}
