// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

var (
	// ErrNotFound is returned when no bundle has the requested slug.
	ErrNotFound = errors.New("bundle not found")
	// ErrDuplicateSlug is returned when a bundle with the slug already exists.
	ErrDuplicateSlug = errors.New("bundle slug already exists")
)

// BundleRepositoryInterface stores bundles keyed by slug.
// List returns bundles ordered by creation time, oldest first.
type BundleRepositoryInterface interface {
	List(ctx context.Context) ([]model.Bundle, error)
	FindBySlug(ctx context.Context, slug string) (*model.Bundle, error)
	Create(ctx context.Context, bundle *model.Bundle) error
	Update(ctx context.Context, bundle *model.Bundle) error
	Delete(ctx context.Context, slug string) error
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}

// IsStorageFailure reports whether err is an infrastructure failure rather
// than a lookup or uniqueness outcome.
func IsStorageFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrDuplicateSlug) &&
		!errors.Is(err, context.Canceled)
}
