//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
)

func TestLogsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, db.SetLogsTTL(ctx, 30))
	repo := NewLogsRepository(db)

	t.Run("create request log", func(t *testing.T) {
		entry := &LogEntryDocument{
			Level:      "info",
			Message:    "GET /api/bundles",
			RequestID:  "req-1",
			Method:     "GET",
			Path:       "/api/bundles",
			StatusCode: 200,
			Duration:   3,
		}
		require.NoError(t, repo.Create(ctx, entry))
		assert.False(t, entry.ID.IsZero())
		assert.False(t, entry.Timestamp.IsZero())
	})

	t.Run("create audit logs", func(t *testing.T) {
		require.NoError(t, repo.CreateMany(ctx, []*LogEntryDocument{
			{Level: "info", Message: "Bundle created", Actor: "admin@example.com", ActionType: "create_bundle", BundleSlug: "lean"},
			{Level: "info", Message: "Bundle deleted", Actor: "admin@example.com", ActionType: "delete_bundle", BundleSlug: "lean"},
			{Level: "warn", Message: "Login failed", ActionType: "login"},
		}))
	})

	t.Run("query by bundle", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{BundleSlug: "lean"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("query by action with limit", func(t *testing.T) {
		entries, err := repo.Query(ctx, LogQueryOptions{ActionType: "create_bundle", Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "admin@example.com", entries[0].Actor)
	})

	t.Run("count in window", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		count, err := repo.Count(ctx, LogQueryOptions{StartTime: &start})
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestLogsRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewLogsRepositoryWithCircuitBreaker(NewLogsRepository(setupTestDB(t)), cb)

	require.NoError(t, repo.Create(ctx, &LogEntryDocument{Level: "info", Message: "ok"}))
	count, err := repo.Count(ctx, LogQueryOptions{Level: "info"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "closed", cb.GetStats().State)
}
