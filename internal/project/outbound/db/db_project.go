package db

import (
	"context"
	"time"

	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/project/entity"
	"github.com/worknest/worknest-api/internal/shared/collection"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type projectDocument struct {
	ID           primitive.ObjectID   `bson:"_id"`
	Name         string               `bson:"name"`
	TotalBudget  float64              `bson:"total_budget"`
	TotalPaid    float64              `bson:"total_paid"`
	TotalPending float64              `bson:"total_pending"`
	StartDate    time.Time            `bson:"start_date"`
	EndDate      time.Time            `bson:"end_date"`
	TeamMembers  []primitive.ObjectID `bson:"team_members"`
	Status       string               `bson:"status"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`

	Members []memberSummaryDocument `bson:"members,omitempty"`
}

type memberSummaryDocument struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
	Role  string             `bson:"role"`
}

// toEntity keeps populated members in staffing order.
func (d projectDocument) toEntity() entity.Project {
	byID := make(map[primitive.ObjectID]memberSummaryDocument, len(d.Members))
	for _, m := range d.Members {
		byID[m.ID] = m
	}

	ids := make([]string, 0, len(d.TeamMembers))
	members := make([]entity.MemberSummary, 0, len(d.Members))
	for _, oid := range d.TeamMembers {
		ids = append(ids, oid.Hex())
		if m, ok := byID[oid]; ok {
			members = append(members, entity.MemberSummary{
				ID:    m.ID.Hex(),
				Name:  m.Name,
				Email: m.Email,
				Role:  m.Role,
			})
		}
	}

	return entity.Project{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		TotalBudget:   d.TotalBudget,
		TotalPaid:     d.TotalPaid,
		TotalPending:  d.TotalPending,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		TeamMemberIDs: ids,
		Members:       members,
		Status:        entity.Status(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// populate joins the member name, email and role onto each project.
func populate() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: collection.TeamMembers},
		{Key: "localField", Value: "team_members"},
		{Key: "foreignField", Value: "_id"},
		{Key: "pipeline", Value: bson.A{
			bson.D{{Key: "$project", Value: bson.D{
				{Key: "name", Value: 1},
				{Key: "email", Value: 1},
				{Key: "role", Value: 1},
			}}},
		}},
		{Key: "as", Value: "members"},
	}}}
}

// recomputePending is the pipeline stage that keeps pending in step with
// budget and paid.
func recomputePending() bson.D {
	return bson.D{{Key: "$set", Value: bson.D{
		{Key: "total_pending", Value: bson.D{{Key: "$subtract", Value: bson.A{
			bson.D{{Key: "$ifNull", Value: bson.A{"$total_budget", 0}}},
			bson.D{{Key: "$ifNull", Value: bson.A{"$total_paid", 0}}},
		}}}},
	}}}
}

func (s *DB) CreateProject(ctx context.Context, p entity.CreateProject) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "CreateProject")
	defer func() { s.endSpan(span, err) }()

	members, err := objectIDs(p.TeamMemberIDs)
	if err != nil {
		return "", err
	}

	doc := projectDocument{
		ID:           primitive.NewObjectID(),
		Name:         p.Name,
		TotalBudget:  p.TotalBudget,
		TotalPaid:    0,
		TotalPending: p.TotalBudget,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		TeamMembers:  members,
		Status:       p.Status.String(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.CreatedAt,
	}

	if _, err = s.projects.InsertOne(ctx, doc); err != nil {
		err = s.mapError(err)
		return "", err
	}

	return doc.ID.Hex(), nil
}

func (s *DB) ListProjects(ctx context.Context) (_ []entity.Project, err error) {
	ctx, span := s.startSpan(ctx, "ListProjects")
	defer func() { s.endSpan(span, err) }()

	cur, err := s.projects.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		populate(),
	})
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	var docs []projectDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}

	return out, nil
}

func (s *DB) GetProject(ctx context.Context, id string) (_ *entity.Project, err error) {
	ctx, span := s.startSpan(ctx, "GetProject")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	cur, err := s.projects.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		populate(),
	})
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	var docs []projectDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		err = goerror.ErrNotFound
		return nil, err
	}

	out := docs[0].toEntity()
	return &out, nil
}

// UpdateProject applies the patch and recomputes pending in one pipeline
// update. Values are wrapped in $literal so strings are never read as field
// paths.
func (s *DB) UpdateProject(ctx context.Context, id string, patch entity.ProjectPatch) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProject")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.D{{Key: "updated_at", Value: literal(patch.UpdatedAt)}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: literal(*patch.Name)})
	}
	if patch.TotalBudget != nil {
		set = append(set, bson.E{Key: "total_budget", Value: literal(*patch.TotalBudget)})
	}
	if patch.TotalPaid != nil {
		set = append(set, bson.E{Key: "total_paid", Value: literal(*patch.TotalPaid)})
	}
	if patch.StartDate != nil {
		set = append(set, bson.E{Key: "start_date", Value: literal(*patch.StartDate)})
	}
	if patch.EndDate != nil {
		set = append(set, bson.E{Key: "end_date", Value: literal(*patch.EndDate)})
	}
	if patch.TeamMemberIDs != nil {
		members, err := objectIDs(*patch.TeamMemberIDs)
		if err != nil {
			return err
		}
		set = append(set, bson.E{Key: "team_members", Value: literal(members)})
	}
	if patch.Status != nil {
		set = append(set, bson.E{Key: "status", Value: literal(patch.Status.String())})
	}

	res, err := s.projects.UpdateOne(ctx, bson.M{"_id": oid}, mongo.Pipeline{
		{{Key: "$set", Value: set}},
		recomputePending(),
	})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) DeleteProject(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteProject")
	defer func() { s.endSpan(span, err) }()

	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := s.projects.DeleteOne(ctx, bson.M{"_id": oid})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// AddProjectMember only matches projects that do not already list the
// member, so a second add is a no-op reported as false.
func (s *DB) AddProjectMember(ctx context.Context, projectID, memberID string, at time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "AddProjectMember")
	defer func() { s.endSpan(span, err) }()

	pid, err := objectID(projectID)
	if err != nil {
		return false, err
	}
	mid, err := objectID(memberID)
	if err != nil {
		return false, err
	}

	res, err := s.projects.UpdateOne(ctx,
		bson.M{"_id": pid, "team_members": bson.M{"$ne": mid}},
		bson.M{
			"$addToSet": bson.M{"team_members": mid},
			"$set":      bson.M{"updated_at": at},
		},
	)
	if err = s.mapError(err); err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	n, err := s.projects.CountDocuments(ctx, bson.M{"_id": pid})
	if err = s.mapError(err); err != nil {
		return false, err
	}
	if n == 0 {
		err = goerror.ErrNotFound
		return false, err
	}

	return false, nil
}

func (s *DB) RemoveProjectMember(ctx context.Context, projectID, memberID string, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "RemoveProjectMember")
	defer func() { s.endSpan(span, err) }()

	pid, err := objectID(projectID)
	if err != nil {
		return err
	}
	mid, err := objectID(memberID)
	if err != nil {
		return err
	}

	res, err := s.projects.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{
		"$pull": bson.M{"team_members": mid},
		"$set":  bson.M{"updated_at": at},
	})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) UpdateProjectStatus(ctx context.Context, projectID string, status entity.Status, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProjectStatus")
	defer func() { s.endSpan(span, err) }()

	pid, err := objectID(projectID)
	if err != nil {
		return err
	}

	res, err := s.projects.UpdateOne(ctx, bson.M{"_id": pid}, bson.M{
		"$set": bson.M{"status": status.String(), "updated_at": at},
	})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

// AddProjectPayment increments the paid total and recomputes pending in the
// same document write, so concurrent payments never lose an increment.
func (s *DB) AddProjectPayment(ctx context.Context, projectID string, amount float64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "AddProjectPayment")
	defer func() { s.endSpan(span, err) }()

	pid, err := objectID(projectID)
	if err != nil {
		return err
	}

	res, err := s.projects.UpdateOne(ctx, bson.M{"_id": pid}, mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "total_paid", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$total_paid", 0}}},
				amount,
			}}}},
			{Key: "updated_at", Value: literal(at)},
		}}},
		recomputePending(),
	})
	if err = s.mapError(err); err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func literal(v any) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}
