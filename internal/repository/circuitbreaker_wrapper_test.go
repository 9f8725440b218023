//go:build !integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

var errMongoDown = errors.New("server selection timeout")

type brokenBundleRepo struct{ *MemoryBundleRepository }

func (brokenBundleRepo) List(context.Context) ([]model.Bundle, error) { return nil, errMongoDown }

type brokenLogsRepo struct{}

func (brokenLogsRepo) Create(context.Context, *LogEntryDocument) error       { return errMongoDown }
func (brokenLogsRepo) CreateMany(context.Context, []*LogEntryDocument) error { return errMongoDown }
func (brokenLogsRepo) Query(context.Context, LogQueryOptions) ([]*LogEntryDocument, error) {
	return nil, errMongoDown
}
func (brokenLogsRepo) Count(context.Context, LogQueryOptions) (int64, error) { return 0, errMongoDown }

func storageBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
		Name:             "test-storage",
		IsFailure:        IsStorageFailure,
	})
}

func TestBundleRepositoryWithCircuitBreaker_DomainErrorsKeepCircuitClosed(t *testing.T) {
	ctx := context.Background()
	cb := storageBreaker()
	repo := NewBundleRepositoryWithCircuitBreaker(NewMemoryBundleRepository(), cb)

	for i := 0; i < 3; i++ {
		_, err := repo.FindBySlug(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), ErrNotFound)
	}
	require.NoError(t, repo.Create(ctx, &model.Bundle{ID: "a"}))
	assert.ErrorIs(t, repo.Create(ctx, &model.Bundle{ID: "a"}), ErrDuplicateSlug)
	assert.ErrorIs(t, repo.Create(ctx, &model.Bundle{ID: "a"}), ErrDuplicateSlug)

	assert.Equal(t, circuitbreaker.StateClosed, repo.GetCircuitBreaker().State())

	b := &model.Bundle{ID: "a", Name: "A2"}
	require.NoError(t, repo.Update(ctx, b))
	bundles, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bundles, 1)
}

func TestBundleRepositoryWithCircuitBreaker_OpensOnStorageFailures(t *testing.T) {
	ctx := context.Background()
	repo := NewBundleRepositoryWithCircuitBreaker(brokenBundleRepo{NewMemoryBundleRepository()}, storageBreaker())

	for i := 0; i < 2; i++ {
		_, err := repo.List(ctx)
		assert.ErrorIs(t, err, errMongoDown)
	}

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	assert.True(t, repo.GetCircuitBreaker().IsOpen())
}

func TestLogsRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	repo := NewLogsRepositoryWithCircuitBreaker(brokenLogsRepo{}, storageBreaker())

	assert.ErrorIs(t, repo.Create(ctx, &LogEntryDocument{}), errMongoDown)
	assert.ErrorIs(t, repo.CreateMany(ctx, []*LogEntryDocument{{}}), errMongoDown)
	require.True(t, repo.GetCircuitBreaker().IsOpen())

	assert.NoError(t, repo.Create(ctx, &LogEntryDocument{}), "writes are dropped while open")
	assert.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{{}}))

	_, err := repo.Query(ctx, LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	_, err = repo.Count(ctx, LogQueryOptions{})
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
}

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	filter := LogQueryOptions{ActionType: "create_bundle", BundleSlug: "lean", StartTime: &start}.filter()

	assert.Equal(t, "create_bundle", filter["action_type"])
	assert.Equal(t, "lean", filter["bundle_slug"])
	assert.NotContains(t, filter, "actor")
	assert.Contains(t, filter, "timestamp")
	assert.Empty(t, LogQueryOptions{}.filter())

	audit := LogQueryOptions{AuditOnly: true}.filter()
	assert.Equal(t, bson.M{"$exists": true, "$ne": ""}, audit["action_type"])
	assert.Equal(t, "login", LogQueryOptions{AuditOnly: true, ActionType: "login"}.filter()["action_type"])
}
