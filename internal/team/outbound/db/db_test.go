package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/mongodb/mongotest"
	"github.com/worknest/worknest-api/internal/team/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDB(t *testing.T) {
	ctx := context.Background()
	store := NewDB(mongotest.NewDatabase(t), instrument.NewNoop())
	require.NoError(t, store.EnsureIndexes(ctx))

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	alice, err := store.CreateMember(ctx, entity.Member{
		Name: "Alice", Phone: "0811", Email: "alice@x.com", Role: "Designer",
		TotalAmount: 1000, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotEmpty(t, alice.ID)

	t.Run("DuplicateEmailOrPhone", func(t *testing.T) {
		_, err := store.CreateMember(ctx, entity.Member{Name: "A2", Phone: "0899", Email: "alice@x.com", Role: "x"})
		assert.ErrorIs(t, err, goerror.ErrConflict)

		_, err = store.CreateMember(ctx, entity.Member{Name: "A3", Phone: "0811", Email: "a3@x.com", Role: "x"})
		assert.ErrorIs(t, err, goerror.ErrConflict)
	})

	t.Run("GetAndList", func(t *testing.T) {
		got, err := store.GetMember(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		assert.Nil(t, got.LastPaymentDate)

		list, err := store.ListMembers(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, alice.ID, list[0].ID)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.GetMember(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, goerror.ErrNotFound)

		_, err = store.GetMember(ctx, "not-an-id")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		role := "Lead"
		paid := 250.0
		paidAt := now.Add(time.Hour)

		got, err := store.UpdateMember(ctx, alice.ID, entity.MemberPatch{
			Role: &role, PaidAmount: &paid, LastPaymentDate: &paidAt, UpdatedAt: paidAt,
		})
		require.NoError(t, err)
		assert.Equal(t, "Lead", got.Role)
		assert.Equal(t, "Alice", got.Name)
		assert.InDelta(t, 250.0, got.PaidAmount, 0.001)
		require.NotNil(t, got.LastPaymentDate)
		assert.True(t, paidAt.Equal(*got.LastPaymentDate))

		_, err = store.UpdateMember(ctx, primitive.NewObjectID().Hex(), entity.MemberPatch{Role: &role})
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("DeletePullsFromProjects", func(t *testing.T) {
		bob, err := store.CreateMember(ctx, entity.Member{Name: "Bob", Phone: "0822", Email: "bob@x.com", Role: "Dev"})
		require.NoError(t, err)
		bobID, err := primitive.ObjectIDFromHex(bob.ID)
		require.NoError(t, err)
		aliceID, err := primitive.ObjectIDFromHex(alice.ID)
		require.NoError(t, err)

		_, err = store.projects.InsertMany(ctx, []any{
			bson.M{"name": "P1", "team_members": bson.A{aliceID, bobID}},
			bson.M{"name": "P2", "team_members": bson.A{bobID}},
		})
		require.NoError(t, err)

		require.NoError(t, store.DeleteMember(ctx, bob.ID))
		assert.ErrorIs(t, store.DeleteMember(ctx, bob.ID), goerror.ErrNotFound)

		n, err := store.projects.CountDocuments(ctx, bson.M{"team_members": bobID})
		require.NoError(t, err)
		assert.Zero(t, n)

		var p1 struct {
			TeamMembers []primitive.ObjectID `bson:"team_members"`
		}
		require.NoError(t, store.projects.FindOne(ctx, bson.M{"name": "P1"}).Decode(&p1))
		assert.Equal(t, []primitive.ObjectID{aliceID}, p1.TeamMembers)
	})
}
