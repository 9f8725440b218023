//go:build integration

// Package testutil starts MongoDB containers for the integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// DefaultMongoImage is used unless TEST_MONGO_IMAGE is set.
const DefaultMongoImage = "mongo:7.0"

// maxDBNameLen leaves room for the uniqueness suffix under MongoDB's 64 byte limit.
const maxDBNameLen = 50

// MongoDBContainer wraps a MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container.
// Packages with many tests should share one through SetupTestMainWithMongoDB.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("TEST_MONGO_IMAGE")
	if image == "" {
		image = DefaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}

var (
	sharedMu        sync.Mutex
	sharedContainer *MongoDBContainer
)

// testRunner is the part of *testing.M that SetupTestMainWithMongoDB needs.
type testRunner interface {
	Run() int
}

// SetupTestMainWithMongoDB starts the package's shared container, runs m and
// terminates the container.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m testRunner) int {
	container, err := SetupMongoDB(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "integration tests need Docker: %v\n", err)
		return 1
	}

	sharedMu.Lock()
	sharedContainer = container
	sharedMu.Unlock()

	code := m.Run()

	sharedMu.Lock()
	sharedContainer = nil
	sharedMu.Unlock()

	if err := container.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the container started by
// SetupTestMainWithMongoDB. It panics outside of one.
func GetSharedContainerURI() string {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer == nil {
		panic("testutil: shared MongoDB container not started; call SetupTestMainWithMongoDB from TestMain")
	}
	return sharedContainer.URI
}

var dbNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ".", "_", " ", "_", "$", "_", "\"", "_")

// SanitizeDBName turns a test name into a unique, valid database name.
func SanitizeDBName(testName string) string {
	name := dbNameReplacer.Replace(testName)
	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1_000_000)
}
