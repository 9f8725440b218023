package repository

import (
	"context"
	"sync"
	"time"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// MemoryBundleRepository keeps bundles in process. It backs the service when
// MongoDB is disabled and is used in tests.
type MemoryBundleRepository struct {
	mu      sync.RWMutex
	order   []string
	bundles map[string]model.Bundle
	now     func() time.Time
}

// NewMemoryBundleRepository creates an empty in-memory repository.
func NewMemoryBundleRepository() *MemoryBundleRepository {
	return &MemoryBundleRepository{
		bundles: make(map[string]model.Bundle),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// List returns bundles in insertion order.
func (r *MemoryBundleRepository) List(_ context.Context) ([]model.Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bundle, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, copyBundle(r.bundles[slug]))
	}
	return out, nil
}

// FindBySlug returns ErrNotFound when no bundle has slug.
func (r *MemoryBundleRepository) FindBySlug(_ context.Context, slug string) (*model.Bundle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bundles[slug]
	if !ok {
		return nil, ErrNotFound
	}
	b = copyBundle(b)
	return &b, nil
}

// Create stores bundle and stamps its timestamps.
func (r *MemoryBundleRepository) Create(_ context.Context, bundle *model.Bundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bundles[bundle.ID]; exists {
		return ErrDuplicateSlug
	}

	now := r.now()
	bundle.CreatedAt, bundle.UpdatedAt = &now, &now
	bundle.Slug = bundle.ID

	r.bundles[bundle.ID] = copyBundle(*bundle)
	r.order = append(r.order, bundle.ID)
	return nil
}

// Update overwrites the editable fields of the bundle with bundle.ID.
func (r *MemoryBundleRepository) Update(_ context.Context, bundle *model.Bundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.bundles[bundle.ID]
	if !ok {
		return ErrNotFound
	}

	now := r.now()
	next := copyBundle(*bundle)
	next.Slug = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = &now

	r.bundles[bundle.ID] = next
	*bundle = copyBundle(next)
	return nil
}

// Delete removes the bundle with slug.
func (r *MemoryBundleRepository) Delete(_ context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bundles[slug]; !ok {
		return ErrNotFound
	}
	delete(r.bundles, slug)
	for i, s := range r.order {
		if s == slug {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func copyBundle(b model.Bundle) model.Bundle {
	b.Items = append([]model.BundleItem{}, b.Items...)
	if b.FixedPrice != nil {
		v := *b.FixedPrice
		b.FixedPrice = &v
	}
	return b
}
