package repository

import (
	"context"
	"errors"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

// guard runs fn through cb and returns its result.
func guard[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// BundleRepositoryWithCircuitBreaker guards a bundle repository.
// The breaker should be built with IsFailure set to IsStorageFailure so that
// lookups of missing slugs do not open it.
type BundleRepositoryWithCircuitBreaker struct {
	repo           BundleRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewBundleRepositoryWithCircuitBreaker wraps repo.
func NewBundleRepositoryWithCircuitBreaker(repo BundleRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *BundleRepositoryWithCircuitBreaker {
	return &BundleRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *BundleRepositoryWithCircuitBreaker) List(ctx context.Context) ([]model.Bundle, error) {
	return guard(ctx, r.circuitBreaker, func() ([]model.Bundle, error) {
		return r.repo.List(ctx)
	})
}

func (r *BundleRepositoryWithCircuitBreaker) FindBySlug(ctx context.Context, slug string) (*model.Bundle, error) {
	return guard(ctx, r.circuitBreaker, func() (*model.Bundle, error) {
		return r.repo.FindBySlug(ctx, slug)
	})
}

func (r *BundleRepositoryWithCircuitBreaker) Create(ctx context.Context, bundle *model.Bundle) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, bundle)
	})
}

func (r *BundleRepositoryWithCircuitBreaker) Update(ctx context.Context, bundle *model.Bundle) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Update(ctx, bundle)
	})
}

func (r *BundleRepositoryWithCircuitBreaker) Delete(ctx context.Context, slug string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, slug)
	})
}

// GetCircuitBreaker returns the breaker for readiness reporting.
func (r *BundleRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards a logs repository.
// Writes are dropped silently while the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	return dropWhenOpen(r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	}))
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guard(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guard(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the breaker for readiness reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}
