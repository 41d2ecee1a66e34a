package db

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/verification/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type otpDocument struct {
	Email      string    `bson:"email"`
	SecretHash string    `bson:"secret_hash"`
	CreatedAt  time.Time `bson:"created_at"`
	Attempts   int       `bson:"attempts"`
}

func (s *DB) SaveOTP(ctx context.Context, rec entity.OTPRecord) (err error) {
	ctx, span := s.startSpan(ctx, "SaveOTP")
	defer func() { s.endSpan(span, err) }()

	doc := otpDocument{
		Email:      rec.Email,
		SecretHash: rec.SecretHash,
		CreatedAt:  rec.CreatedAt,
		Attempts:   rec.Attempts,
	}

	_, err = s.otps.ReplaceOne(ctx, bson.M{"email": rec.Email}, doc, options.Replace().SetUpsert(true))
	err = s.mapError(err)
	return err
}

func (s *DB) GetOTP(ctx context.Context, email string) (_ *entity.OTPRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetOTP")
	defer func() { s.endSpan(span, err) }()

	var doc otpDocument
	if err = s.mapError(s.otps.FindOne(ctx, bson.M{"email": email}).Decode(&doc)); err != nil {
		return nil, err
	}

	return &entity.OTPRecord{
		Email:      doc.Email,
		SecretHash: doc.SecretHash,
		CreatedAt:  doc.CreatedAt,
		Attempts:   doc.Attempts,
	}, nil
}

// ReserveOTPAttempt spends one attempt from the record's budget before the
// code is compared. The increment only applies while attempts < maxAttempts,
// so concurrent requests can never push the counter past the cap. It reports
// goerror.ErrConflict when the budget is spent and goerror.ErrNotFound when
// the record is gone. It never upserts.
func (s *DB) ReserveOTPAttempt(ctx context.Context, email string, maxAttempts int) (err error) {
	ctx, span := s.startSpan(ctx, "ReserveOTPAttempt")
	defer func() { s.endSpan(span, err) }()

	filter := bson.M{"email": email, "attempts": bson.M{"$lt": maxAttempts}}
	res, err := s.otps.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"attempts": 1}})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.otps.CountDocuments(ctx, bson.M{"email": email})
	if err = s.mapError(err); err != nil {
		return err
	}
	if n > 0 {
		err = goerror.ErrConflict
	} else {
		err = goerror.ErrNotFound
	}

	return err
}

// DeleteOTP removes the record and reports goerror.ErrNotFound when another
// request already removed it.
func (s *DB) DeleteOTP(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTP")
	defer func() { s.endSpan(span, err) }()

	res, err := s.otps.DeleteOne(ctx, bson.M{"email": email})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		err = goerror.ErrNotFound
	}

	return err
}

func (s *DB) DeleteOTPsByEmail(ctx context.Context, email string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteOTPsByEmail")
	defer func() { s.endSpan(span, err) }()

	_, err = s.otps.DeleteMany(ctx, bson.M{"email": email})
	err = s.mapError(err)
	return err
}
