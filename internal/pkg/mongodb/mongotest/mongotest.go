// Package mongotest starts a disposable MongoDB for store integration tests.
package mongotest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/worknest/worknest-api/internal/pkg/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// Image is the server version the stores are tested against.
const Image = "mongo:7"

// NewDatabase returns a fresh database named after the test. It skips the
// test under -short since it needs Docker.
func NewDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongodb container test in short mode")
	}

	ctx := context.Background()
	container, err := tcmongo.Run(ctx, Image)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      uri,
		Database: strings.ToLower(strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close(context.Background()) })

	return client.Database()
}
