package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/metrics"
	"github.com/guttosm/bundle-service/internal/repository"
)

var (
	// ErrSlugRequired is returned when a new bundle has no id, slug or name.
	ErrSlugRequired = errors.New("slug or name required")
	// ErrBundleExists is returned when the derived slug is already taken.
	ErrBundleExists = errors.New("Bundle with this slug already exists")
	// ErrBundleNotFound is returned for unknown slugs.
	ErrBundleNotFound = errors.New("Bundle not found")
	// ErrCatalogUnavailable wraps product catalog failures.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)

// Bundle operation labels for metrics and audit logs.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ProductSource supplies the current catalog.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

// BundleService manages bundle definitions and derives their views.
type BundleService interface {
	List(ctx context.Context) ([]model.Bundle, error)
	Get(ctx context.Context, slug string) (*model.Bundle, error)
	Create(ctx context.Context, req dto.BundleRequest) (*model.Bundle, error)
	Update(ctx context.Context, slug string, req dto.UpdateBundleRequest) (*model.Bundle, error)
	Delete(ctx context.Context, slug string) error
	Products(ctx context.Context) ([]model.Product, error)
	Views(ctx context.Context) ([]model.BundleView, error)
}

// BundleServiceImpl implements BundleService on a bundle repository.
type BundleServiceImpl struct {
	repo     repository.BundleRepositoryInterface
	products ProductSource
	deriver  *ViewDeriver
}

// NewBundleService creates a bundle service. A nil deriver recomputes views on every call.
func NewBundleService(repo repository.BundleRepositoryInterface, products ProductSource, deriver *ViewDeriver) *BundleServiceImpl {
	if deriver == nil {
		deriver = NewViewDeriver()
	}
	return &BundleServiceImpl{repo: repo, products: products, deriver: deriver}
}

// List returns every bundle, oldest first.
func (s *BundleServiceImpl) List(ctx context.Context) ([]model.Bundle, error) {
	bundles, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	if bundles == nil {
		bundles = []model.Bundle{}
	}
	return bundles, nil
}

// Get returns the bundle with slug.
func (s *BundleServiceImpl) Get(ctx context.Context, slug string) (*model.Bundle, error) {
	b, err := s.repo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBundleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find bundle %q: %w", slug, err)
	}
	return b, nil
}

// Create validates req, derives its slug and stores a new bundle.
func (s *BundleServiceImpl) Create(ctx context.Context, req dto.BundleRequest) (*model.Bundle, error) {
	slug := model.Slugify(req.SlugSource())
	if slug == "" {
		metrics.RecordBundleOperation(OpCreate, "invalid")
		return nil, ErrSlugRequired
	}
	if err := req.Validate(); err != nil {
		metrics.RecordBundleOperation(OpCreate, "invalid")
		return nil, err
	}

	b := req.ToBundle(slug)
	err := s.repo.Create(ctx, b)
	if errors.Is(err, repository.ErrDuplicateSlug) {
		metrics.RecordBundleOperation(OpCreate, "conflict")
		return nil, ErrBundleExists
	}
	if err != nil {
		metrics.RecordBundleOperation(OpCreate, "error")
		return nil, fmt.Errorf("create bundle %q: %w", slug, err)
	}

	s.deriver.InvalidateCache()
	metrics.RecordBundleOperation(OpCreate, "success")
	log.Info().Str("slug", slug).Msg("Bundle created")
	return b, nil
}

// Update merges the fields present in req into the bundle with slug.
// The slug never changes.
func (s *BundleServiceImpl) Update(ctx context.Context, slug string, req dto.UpdateBundleRequest) (*model.Bundle, error) {
	if err := req.Validate(); err != nil {
		metrics.RecordBundleOperation(OpUpdate, "invalid")
		return nil, err
	}

	b, err := s.Get(ctx, slug)
	if err != nil {
		metrics.RecordBundleOperation(OpUpdate, statusFor(err))
		return nil, err
	}

	req.Apply(b)
	err = s.repo.Update(ctx, b)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordBundleOperation(OpUpdate, "not_found")
		return nil, ErrBundleNotFound
	}
	if err != nil {
		metrics.RecordBundleOperation(OpUpdate, "error")
		return nil, fmt.Errorf("update bundle %q: %w", slug, err)
	}

	s.deriver.InvalidateCache()
	metrics.RecordBundleOperation(OpUpdate, "success")
	log.Info().Str("slug", slug).Msg("Bundle updated")
	return b, nil
}

// Delete removes the bundle with slug.
func (s *BundleServiceImpl) Delete(ctx context.Context, slug string) error {
	err := s.repo.Delete(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.RecordBundleOperation(OpDelete, "not_found")
		return ErrBundleNotFound
	}
	if err != nil {
		metrics.RecordBundleOperation(OpDelete, "error")
		return fmt.Errorf("delete bundle %q: %w", slug, err)
	}

	s.deriver.InvalidateCache()
	metrics.RecordBundleOperation(OpDelete, "success")
	log.Info().Str("slug", slug).Msg("Bundle deleted")
	return nil
}

// Products returns the current catalog.
func (s *BundleServiceImpl) Products(ctx context.Context) ([]model.Product, error) {
	products, err := s.products.FetchProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Views derives a view for every bundle. When the catalog cannot be fetched
// the views are derived against an empty catalog.
func (s *BundleServiceImpl) Views(ctx context.Context) ([]model.BundleView, error) {
	bundles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.Products(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Deriving bundle views without a catalog")
		products = []model.Product{}
	}

	return s.deriver.Derive(bundles, products), nil
}

func statusFor(err error) string {
	if errors.Is(err, ErrBundleNotFound) {
		return "not_found"
	}
	return "error"
}
