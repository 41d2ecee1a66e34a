package db

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/team/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type memberDocument struct {
	ID              primitive.ObjectID `bson:"_id"`
	Name            string             `bson:"name"`
	Phone           string             `bson:"phone"`
	Email           string             `bson:"email"`
	Role            string             `bson:"role"`
	TotalAmount     float64            `bson:"total_amount"`
	PaidAmount      float64            `bson:"paid_amount"`
	LastPaymentDate *time.Time         `bson:"last_payment_date"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d memberDocument) toEntity() entity.Member {
	return entity.Member{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Phone:           d.Phone,
		Email:           d.Email,
		Role:            d.Role,
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		LastPaymentDate: d.LastPaymentDate,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (s *DB) CreateMember(ctx context.Context, m entity.Member) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "CreateMember")
	defer func() { s.endSpan(span, err) }()

	doc := memberDocument{
		ID:              primitive.NewObjectID(),
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		Role:            m.Role,
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		LastPaymentDate: m.LastPaymentDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	if _, err = s.members.InsertOne(ctx, doc); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	out := doc.toEntity()
	return &out, nil
}

func (s *DB) ListMembers(ctx context.Context) (_ []entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "ListMembers")
	defer func() { s.endSpan(span, err) }()

	cur, err := s.members.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	var docs []memberDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Member, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}

	return out, nil
}

func (s *DB) GetMember(ctx context.Context, id string) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "GetMember")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc memberDocument
	if err = s.mapError(s.members.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)); err != nil {
		return nil, err
	}

	out := doc.toEntity()
	return &out, nil
}

func (s *DB) UpdateMember(ctx context.Context, id string, patch entity.MemberPatch) (_ *entity.Member, err error) {
	ctx, span := s.startSpan(ctx, "UpdateMember")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.TotalAmount != nil {
		set["total_amount"] = *patch.TotalAmount
	}
	if patch.PaidAmount != nil {
		set["paid_amount"] = *patch.PaidAmount
	}
	if patch.LastPaymentDate != nil {
		set["last_payment_date"] = *patch.LastPaymentDate
	}

	var doc memberDocument
	err = s.members.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err = s.mapError(err); err != nil {
		return nil, err
	}

	out := doc.toEntity()
	return &out, nil
}

// DeleteMember removes the member, then pulls its id from every project that
// still references it.
func (s *DB) DeleteMember(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteMember")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.members.DeleteOne(ctx, bson.M{"_id": oid})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	_, err = s.projects.UpdateMany(ctx,
		bson.M{"team_members": oid},
		bson.M{"$pull": bson.M{"team_members": oid}},
	)
	err = s.mapError(err)
	return err
}
