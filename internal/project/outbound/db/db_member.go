package db

import (
	"context"

	"github.com/worknest/worknest-api/internal/project/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CountMembers reports how many of ids name an existing team member. Ids that
// are not valid object ids never match.
func (s *DB) CountMembers(ctx context.Context, ids []string) (_ int, err error) {
	ctx, span := s.startSpan(ctx, "CountMembers")
	defer func() { s.endSpan(span, err) }()

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, perr := primitive.ObjectIDFromHex(id); perr == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, nil
	}

	n, err := s.members.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err = s.mapError(err); err != nil {
		return 0, err
	}

	return int(n), nil
}

// FindMemberByContact returns the id of the member holding either the email
// or the phone number.
func (s *DB) FindMemberByContact(ctx context.Context, email, phone string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "FindMemberByContact")
	defer func() { s.endSpan(span, err) }()

	var doc struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err = s.members.FindOne(ctx,
		bson.M{"$or": bson.A{bson.M{"email": email}, bson.M{"phone": phone}}},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Decode(&doc)
	if err = s.mapError(err); err != nil {
		return "", err
	}

	return doc.ID.Hex(), nil
}

// CreateMember writes a team member with the same layout the team module
// uses.
func (s *DB) CreateMember(ctx context.Context, m entity.NewMember) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "CreateMember")
	defer func() { s.endSpan(span, err) }()

	id := primitive.NewObjectID()
	_, err = s.members.InsertOne(ctx, bson.M{
		"_id":               id,
		"name":              m.Name,
		"phone":             m.Phone,
		"email":             m.Email,
		"role":              m.Role,
		"total_amount":      m.TotalAmount,
		"paid_amount":       m.PaidAmount,
		"last_payment_date": m.LastPaymentDate,
		"created_at":        m.CreatedAt,
		"updated_at":        m.CreatedAt,
	})
	if err = s.mapError(err); err != nil {
		return "", err
	}

	return id.Hex(), nil
}
