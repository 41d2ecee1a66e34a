package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/mongodb/mongotest"
	"github.com/worknest/worknest-api/internal/verification/entity"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDB(t *testing.T) {
	ctx := context.Background()
	store := NewDB(mongotest.NewDatabase(t), instrument.NewNoop())
	require.NoError(t, store.EnsureIndexes(ctx))

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "a@x.com", SecretHash: "h1", CreatedAt: created}))

		rec, err := store.GetOTP(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "h1", rec.SecretHash)
		assert.Equal(t, 0, rec.Attempts)
		assert.True(t, created.Equal(rec.CreatedAt))
	})

	t.Run("SaveReplacesExisting", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "r@x.com", SecretHash: "old", CreatedAt: created, Attempts: 2}))
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "r@x.com", SecretHash: "new", CreatedAt: created}))

		n, err := store.otps.CountDocuments(ctx, bson.M{"email": "r@x.com"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		rec, err := store.GetOTP(ctx, "r@x.com")
		require.NoError(t, err)
		assert.Equal(t, "new", rec.SecretHash)
		assert.Equal(t, 0, rec.Attempts)
	})

	t.Run("EmailIsCaseSensitive", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "c@x.com", SecretHash: "h", CreatedAt: created}))

		_, err := store.GetOTP(ctx, "C@x.com")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("ReserveIsAtomic", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "i@x.com", SecretHash: "h", CreatedAt: created}))

		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, store.ReserveOTPAttempt(ctx, "i@x.com", 100))
			}()
		}
		wg.Wait()

		rec, err := store.GetOTP(ctx, "i@x.com")
		require.NoError(t, err)
		assert.Equal(t, 20, rec.Attempts)
	})

	t.Run("ReserveStopsAtBudget", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "b@x.com", SecretHash: "h", CreatedAt: created}))

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			granted  int
			rejected int
		)
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.ReserveOTPAttempt(ctx, "b@x.com", 3)
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					granted++
					return
				}
				assert.ErrorIs(t, err, goerror.ErrConflict)
				rejected++
			}()
		}
		wg.Wait()

		assert.Equal(t, 3, granted)
		assert.Equal(t, 17, rejected)

		rec, err := store.GetOTP(ctx, "b@x.com")
		require.NoError(t, err)
		assert.Equal(t, 3, rec.Attempts)
	})

	t.Run("ReserveDoesNotResurrect", func(t *testing.T) {
		err := store.ReserveOTPAttempt(ctx, "ghost@x.com", 3)
		assert.ErrorIs(t, err, goerror.ErrNotFound)

		_, err = store.GetOTP(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("DeleteOnce", func(t *testing.T) {
		require.NoError(t, store.SaveOTP(ctx, entity.OTPRecord{Email: "d@x.com", SecretHash: "h", CreatedAt: created}))

		require.NoError(t, store.DeleteOTP(ctx, "d@x.com"))
		assert.ErrorIs(t, store.DeleteOTP(ctx, "d@x.com"), goerror.ErrNotFound)
		assert.NoError(t, store.DeleteOTPsByEmail(ctx, "d@x.com"))
	})

	t.Run("UpsertVerifiedUser", func(t *testing.T) {
		require.NoError(t, store.UpsertVerifiedUser(ctx, entity.VerifiedUser{Email: "u@x.com", VerifiedAt: created}))
		require.NoError(t, store.UpsertVerifiedUser(ctx, entity.VerifiedUser{Email: "u@x.com", VerifiedAt: created.Add(time.Hour)}))

		var doc struct {
			Verified  bool      `bson:"verified"`
			CreatedAt time.Time `bson:"created_at"`
		}
		require.NoError(t, store.users.FindOne(ctx, bson.M{"email": "u@x.com"}).Decode(&doc))
		assert.True(t, doc.Verified)
		assert.True(t, created.Equal(doc.CreatedAt))

		n, err := store.users.CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
