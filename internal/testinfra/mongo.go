//go:build integration

// Package testinfra starts the MongoDB container shared by the integration
// tests. Run them with `go test -tags integration ./...`.
package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoImage = "mongo:7.0"

var (
	sharedOnce      sync.Once
	sharedContainer testcontainers.Container
	sharedClient    *mongo.Client
	sharedURI       string
	sharedErr       error
)

// SkipIfNoDocker skips the test if Docker is not available.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// SharedMongo returns a client connected to a MongoDB container started on
// first use. The container lives until Terminate is called from TestMain.
func SharedMongo(t *testing.T) (*mongo.Client, string) {
	t.Helper()
	SkipIfNoDocker(t)

	sharedOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.ContainerRequest{
			Image:        mongoImage,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp"),
		}
		sharedContainer, sharedErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		if sharedErr != nil {
			sharedErr = fmt.Errorf("failed to start mongo container: %w", sharedErr)
			return
		}

		endpoint, err := sharedContainer.Endpoint(ctx, "")
		if err != nil {
			sharedErr = fmt.Errorf("failed to get mongo endpoint: %w", err)
			return
		}
		sharedURI = "mongodb://" + endpoint

		sharedClient, sharedErr = mongo.Connect(ctx, options.Client().ApplyURI(sharedURI))
		if sharedErr != nil {
			sharedErr = fmt.Errorf("failed to connect to test mongo: %w", sharedErr)
		}
	})

	if sharedErr != nil {
		t.Fatalf("%v", sharedErr)
	}
	return sharedClient, sharedURI
}

// DatabaseName returns a fresh database name for one test and drops that
// database when the test ends.
func DatabaseName(t *testing.T, client *mongo.Client) string {
	t.Helper()

	name := "testDb_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	t.Cleanup(func() {
		_ = client.Database(name).Drop(context.Background())
	})
	return name
}

// Terminate stops the shared container if one was started.
func Terminate() {
	ctx := context.Background()
	if sharedClient != nil {
		_ = sharedClient.Disconnect(ctx)
	}
	if sharedContainer != nil {
		_ = sharedContainer.Terminate(ctx)
	}
}
