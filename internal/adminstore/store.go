package adminstore

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/service"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

// ErrNoSuchRow is returned when a bundle or item index is out of range.
var ErrNoSuchRow = errors.New("no such row")

// AlertError is a failed save or delete, reported to the admin as "<Op> failed: <msg>".
type AlertError struct {
	Op  string
	Err error
}

func (e *AlertError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *AlertError) Unwrap() error {
	return e.Err
}

// Store holds the admin view of the catalog, the bundle list and the edit form.
// It is safe for concurrent use. Network calls run without holding the lock
// and nothing guards against two overlapping commits; the server keeps the last write.
type Store struct {
	api     API
	deriver *service.ViewDeriver

	mu       sync.Mutex
	products []model.Product
	bundles  []model.Bundle
	form     Form
	editing  int
	errors   dto.FieldErrors
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithViewDeriver replaces the default memoizing deriver.
func WithViewDeriver(d *service.ViewDeriver) StoreOption {
	return func(s *Store) {
		s.deriver = d
	}
}

// NewStore creates an empty store backed by api.
func NewStore(api API, opts ...StoreOption) *Store {
	s := &Store{
		api:      api,
		products: []model.Product{},
		bundles:  []model.Bundle{},
		form:     EmptyForm(),
		editing:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deriver == nil {
		s.deriver = service.NewViewDeriver(service.WithViewCache(
			cache.NewTTL[uint64, []model.BundleView]("admin_views", 4, time.Hour),
		))
	}
	return s
}

// Close releases the view cache.
func (s *Store) Close() {
	s.deriver.Stop()
}

// Load fetches products and bundles. A failed fetch leaves that list empty.
func (s *Store) Load(ctx context.Context) {
	var (
		wg       sync.WaitGroup
		products []model.Product
		bundles  []model.Bundle
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := s.api.ListProducts(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load products")
			return
		}
		products = p
	}()
	go func() {
		defer wg.Done()
		b, err := s.api.ListBundles(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load bundles")
			return
		}
		bundles = b
	}()
	wg.Wait()

	if products == nil {
		products = []model.Product{}
	}
	if bundles == nil {
		bundles = []model.Bundle{}
	}

	s.mu.Lock()
	s.products = products
	s.bundles = bundles
	s.mu.Unlock()
}

// Products returns a copy of the loaded catalog.
func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Product{}, s.products...)
}

// Bundles returns a copy of the bundle list.
func (s *Store) Bundles() []model.Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Bundle{}, s.bundles...)
}

// Form returns a copy of the current form.
func (s *Store) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.clone()
}

// Editing returns the index of the bundle being edited, or -1 when creating.
func (s *Store) Editing() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// Errors returns the field errors from the last validation.
func (s *Store) Errors() dto.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(dto.FieldErrors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// UpdateForm applies fn to the form.
func (s *Store) UpdateForm(fn func(f *Form)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.form)
}

// StartCreate resets the form for a new bundle.
func (s *Store) StartCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// StartEdit loads bundle i into the form.
func (s *Store) StartEdit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.bundles) {
		return ErrNoSuchRow
	}
	s.editing = i
	s.form = formFromBundle(s.bundles[i])
	s.errors = nil
	return nil
}

// CancelEdit discards the form.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.editing = -1
	s.form = EmptyForm()
	s.errors = nil
}

// AddItemRow appends a blank item row.
func (s *Store) AddItemRow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Items = append(s.form.Items, model.BundleItem{})
}

// UpdateItemRow sets one column of item row i.
func (s *Store) UpdateItemRow(i int, field ItemField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.form.Items) {
		return ErrNoSuchRow
	}
	s.form.setItemField(i, field, value)
	return nil
}

// RemoveItemRow deletes item row i. Removing the last row leaves one blank row.
func (s *Store) RemoveItemRow(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.form.Items) {
		return ErrNoSuchRow
	}
	items := append(s.form.Items[:i:i], s.form.Items[i+1:]...)
	if len(items) == 0 {
		items = []model.BundleItem{{}}
	}
	s.form.Items = items
	return nil
}

// Validate checks the form and records the field errors. It returns nil when valid.
func (s *Store) Validate() dto.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validateLocked()
}

func (s *Store) validateLocked() dto.FieldErrors {
	s.errors = s.form.Validate()
	return s.errors
}

// SlugPreview is the slug the current form would be saved under.
func (s *Store) SlugPreview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.SlugPreview()
}

// AttachImage embeds an image of at most 2MB into the form as a data URL.
// Nothing is uploaded.
func (s *Store) AttachImage(name string, r io.Reader) error {
	dataURL, err := EncodeDataURL(name, r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.form.ImageURL = dataURL
	s.mu.Unlock()
	return nil
}

// Commit validates the form and saves it: POST when creating, PUT keyed by the
// bundle's existing slug when editing. An invalid form returns its
// dto.FieldErrors without any network call. On failure the form is kept and an
// *AlertError is returned.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	if errs := s.validateLocked(); errs != nil {
		s.mu.Unlock()
		return errs
	}
	payload := s.form.Payload()
	editing := s.editing
	var slug string
	if editing >= 0 && editing < len(s.bundles) {
		slug = s.bundles[editing].ID
		if slug == "" {
			slug = payload.ID
		}
	}
	s.mu.Unlock()

	var (
		saved model.Bundle
		err   error
	)
	if slug != "" {
		saved, err = s.api.UpdateBundle(ctx, slug, payload)
	} else {
		saved, err = s.api.CreateBundle(ctx, payload)
	}
	if err != nil {
		log.Warn().Err(err).Str("slug", payload.ID).Msg("Bundle save failed")
		return &AlertError{Op: "Save", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if slug != "" {
		if i := s.indexLocked(editing, slug); i >= 0 {
			s.bundles[i] = saved
		} else {
			s.bundles = append(s.bundles, saved)
		}
	} else {
		s.bundles = append(s.bundles, saved)
	}
	s.resetLocked()
	return nil
}

// Remove deletes bundle i remotely and then locally.
// A bundle without a slug is ignored.
func (s *Store) Remove(ctx context.Context, i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.bundles) {
		s.mu.Unlock()
		return ErrNoSuchRow
	}
	slug := s.bundles[i].ID
	s.mu.Unlock()

	if slug == "" {
		return nil
	}

	if err := s.api.DeleteBundle(ctx, slug); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Bundle delete failed")
		return &AlertError{Op: "Delete", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if j := s.indexLocked(i, slug); j >= 0 {
		s.bundles = append(s.bundles[:j:j], s.bundles[j+1:]...)
	}
	s.resetLocked()
	return nil
}

// indexLocked returns hint when it still points at slug, otherwise searches by slug.
func (s *Store) indexLocked(hint int, slug string) int {
	if hint >= 0 && hint < len(s.bundles) && s.bundles[hint].ID == slug {
		return hint
	}
	for i, b := range s.bundles {
		if b.ID == slug {
			return i
		}
	}
	return -1
}

// Views derives the bundle views for the current products and bundles.
// Results are memoized on the inputs.
func (s *Store) Views() []model.BundleView {
	s.mu.Lock()
	products := append([]model.Product{}, s.products...)
	bundles := append([]model.Bundle{}, s.bundles...)
	s.mu.Unlock()

	return s.deriver.Derive(bundles, products)
}
