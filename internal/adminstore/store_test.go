package adminstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

type fakeAPI struct {
	mu          sync.Mutex
	products    []model.Product
	bundles     []model.Bundle
	productsErr error
	bundlesErr  error
	writeErr    error
	created     []model.Bundle
	updated     map[string]model.Bundle
	deleted     []string
	writes      int
}

func (f *fakeAPI) ListProducts(context.Context) ([]model.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeAPI) ListBundles(context.Context) ([]model.Bundle, error) {
	return f.bundles, f.bundlesErr
}

func (f *fakeAPI) CreateBundle(_ context.Context, b model.Bundle) (model.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return model.Bundle{}, f.writeErr
	}
	f.created = append(f.created, b)
	b.Slug = b.ID
	return b, nil
}

func (f *fakeAPI) UpdateBundle(_ context.Context, slug string, b model.Bundle) (model.Bundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return model.Bundle{}, f.writeErr
	}
	if f.updated == nil {
		f.updated = map[string]model.Bundle{}
	}
	f.updated[slug] = b
	b.ID = slug
	return b, nil
}

func (f *fakeAPI) DeleteBundle(_ context.Context, slug string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, slug)
	return nil
}

func loadedStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	s := NewStore(api)
	t.Cleanup(s.Close)
	s.Load(context.Background())
	return s
}

func TestStore_Load(t *testing.T) {
	tests := []struct {
		name             string
		api              *fakeAPI
		expectedProducts int
		expectedBundles  int
	}{
		{
			name: "both succeed",
			api: &fakeAPI{
				products: []model.Product{{ID: "1"}},
				bundles:  []model.Bundle{{ID: "a"}, {ID: "b"}},
			},
			expectedProducts: 1,
			expectedBundles:  2,
		},
		{
			name: "products fail",
			api: &fakeAPI{
				productsErr: errors.New("HTTP 500"),
				bundles:     []model.Bundle{{ID: "a"}},
			},
			expectedProducts: 0,
			expectedBundles:  1,
		},
		{
			name:             "both fail",
			api:              &fakeAPI{productsErr: errors.New("down"), bundlesErr: errors.New("down")},
			expectedProducts: 0,
			expectedBundles:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedStore(t, tt.api)

			assert.Len(t, s.Products(), tt.expectedProducts)
			assert.Len(t, s.Bundles(), tt.expectedBundles)
			assert.NotNil(t, s.Products())
			assert.NotNil(t, s.Bundles())
		})
	}
}

func TestStore_Commit_ValidationBlocksNetwork(t *testing.T) {
	api := &fakeAPI{}
	s := loadedStore(t, api)

	s.UpdateForm(func(f *Form) {
		f.Name = "Starter"
		f.DiscountPercent = 95
		f.Items = []model.BundleItem{{Category: "protein"}}
	})

	err := s.Commit(context.Background())

	require.Error(t, err)
	var fieldErrs dto.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "Discount must be between 0 and 90", fieldErrs[dto.FieldDiscount])
	assert.Equal(t, fieldErrs, s.Errors())
	assert.Zero(t, api.writes)
	assert.Equal(t, 95.0, s.Form().DiscountPercent, "form is kept")
}

func TestStore_Validate(t *testing.T) {
	s := loadedStore(t, &fakeAPI{})

	errs := s.Validate()

	assert.Equal(t, dto.FieldErrors{
		dto.FieldName:  "Name is required",
		dto.FieldItems: "At least one item with category or keyword is required",
	}, errs)

	s.UpdateForm(func(f *Form) { f.Name = "X" })
	require.NoError(t, s.UpdateItemRow(0, ItemProductID, "12"))
	assert.Nil(t, s.Validate())
}

func TestStore_Commit_Create(t *testing.T) {
	api := &fakeAPI{}
	s := loadedStore(t, api)

	s.UpdateForm(func(f *Form) {
		f.Name = "Strength Starter"
		f.DiscountPercent = 10
		f.FixedPrice = "-3"
		f.Items = []model.BundleItem{{Keyword: "creatine"}}
	})
	assert.Equal(t, "strength-starter", s.SlugPreview())

	require.NoError(t, s.Commit(context.Background()))

	require.Len(t, api.created, 1)
	assert.Equal(t, "strength-starter", api.created[0].ID)
	assert.Nil(t, api.created[0].FixedPrice)

	bundles := s.Bundles()
	require.Len(t, bundles, 1)
	assert.Equal(t, "strength-starter", bundles[0].ID)
	assert.Equal(t, EmptyForm(), s.Form(), "form resets after save")
	assert.Equal(t, -1, s.Editing())
}

func TestStore_Commit_UpdateUsesExistingSlug(t *testing.T) {
	api := &fakeAPI{bundles: []model.Bundle{
		{ID: "first", Name: "First", Items: []model.BundleItem{{Keyword: "a"}}},
		{ID: "old-slug", Name: "Old", Items: []model.BundleItem{{Keyword: "whey"}}},
	}}
	s := loadedStore(t, api)

	require.NoError(t, s.StartEdit(1))
	s.UpdateForm(func(f *Form) {
		f.ID = ""
		f.Name = "Completely New Name"
		f.FixedPrice = "39.90"
	})

	require.NoError(t, s.Commit(context.Background()))

	require.Contains(t, api.updated, "old-slug")
	sent := api.updated["old-slug"]
	assert.Equal(t, "completely-new-name", sent.ID)
	require.NotNil(t, sent.FixedPrice)
	assert.Equal(t, 39.9, *sent.FixedPrice)

	bundles := s.Bundles()
	require.Len(t, bundles, 2)
	assert.Equal(t, "Completely New Name", bundles[1].Name)
	assert.Empty(t, api.created)
}

func TestStore_Commit_FailureKeepsForm(t *testing.T) {
	api := &fakeAPI{writeErr: &HTTPError{StatusCode: 409}}
	s := loadedStore(t, api)

	s.UpdateForm(func(f *Form) {
		f.Name = "Dup"
		f.Items = []model.BundleItem{{Category: "vitamin"}}
	})

	err := s.Commit(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Save failed: HTTP 409", err.Error())
	var alert *AlertError
	assert.True(t, errors.As(err, &alert))
	assert.Equal(t, "Dup", s.Form().Name)
	assert.Empty(t, s.Bundles())
}

func TestStore_Remove(t *testing.T) {
	api := &fakeAPI{bundles: []model.Bundle{{ID: "a"}, {ID: "b"}, {ID: ""}}}
	s := loadedStore(t, api)

	require.NoError(t, s.Remove(context.Background(), 0))
	assert.Equal(t, []string{"a"}, api.deleted)
	require.Len(t, s.Bundles(), 2)
	assert.Equal(t, "b", s.Bundles()[0].ID)

	require.NoError(t, s.Remove(context.Background(), 1), "bundle without slug is ignored")
	assert.Len(t, s.Bundles(), 2)

	assert.ErrorIs(t, s.Remove(context.Background(), 5), ErrNoSuchRow)
}

func TestStore_Remove_Failure(t *testing.T) {
	api := &fakeAPI{bundles: []model.Bundle{{ID: "a"}}, writeErr: errors.New("connection refused")}
	s := loadedStore(t, api)

	err := s.Remove(context.Background(), 0)

	require.Error(t, err)
	assert.Equal(t, "Delete failed: connection refused", err.Error())
	assert.Len(t, s.Bundles(), 1)
}

func TestStore_ItemRows(t *testing.T) {
	s := loadedStore(t, &fakeAPI{})

	s.AddItemRow()
	require.NoError(t, s.UpdateItemRow(1, ItemKeyword, "whey"))
	require.NoError(t, s.UpdateItemRow(0, ItemCategory, "protein"))
	assert.Equal(t, []model.BundleItem{{Category: "protein"}, {Keyword: "whey"}}, s.Form().Items)

	require.NoError(t, s.RemoveItemRow(0))
	assert.Equal(t, []model.BundleItem{{Keyword: "whey"}}, s.Form().Items)

	require.NoError(t, s.RemoveItemRow(0))
	assert.Equal(t, []model.BundleItem{{}}, s.Form().Items, "last row is replaced by a blank one")

	assert.ErrorIs(t, s.RemoveItemRow(3), ErrNoSuchRow)
	assert.ErrorIs(t, s.UpdateItemRow(-1, ItemKeyword, "x"), ErrNoSuchRow)
}

func TestStore_StartEditAndCancel(t *testing.T) {
	fixed := 25.0
	api := &fakeAPI{bundles: []model.Bundle{{ID: "a", Name: "A", FixedPrice: &fixed, Items: []model.BundleItem{{Keyword: "k"}}}}}
	s := loadedStore(t, api)

	require.NoError(t, s.StartEdit(0))
	assert.Equal(t, 0, s.Editing())
	assert.Equal(t, "25", s.Form().FixedPrice)
	assert.Equal(t, "a", s.SlugPreview())

	s.CancelEdit()
	assert.Equal(t, -1, s.Editing())
	assert.Equal(t, EmptyForm(), s.Form())

	assert.ErrorIs(t, s.StartEdit(4), ErrNoSuchRow)
}

func TestStore_AttachImage(t *testing.T) {
	api := &fakeAPI{}
	s := loadedStore(t, api)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, s.AttachImage("pic.png", bytes.NewReader(png)))

	url := s.Form().ImageURL
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"), url)
	assert.Equal(t, base64.StdEncoding.EncodeToString(png), strings.TrimPrefix(url, "data:image/png;base64,"))
	assert.Zero(t, api.writes)
}

func TestStore_AttachImage_TooLarge(t *testing.T) {
	s := loadedStore(t, &fakeAPI{})
	s.UpdateForm(func(f *Form) { f.ImageURL = "keep" })

	err := s.AttachImage("huge.jpg", bytes.NewReader(make([]byte, MaxImageBytes+1)))

	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Equal(t, "Image too large. Please choose a file under 2MB.", err.Error())
	assert.Equal(t, "keep", s.Form().ImageURL)
}

func TestStore_Views(t *testing.T) {
	fixed := 40.0
	api := &fakeAPI{
		products: []model.Product{{ID: "1", Name: "Whey", Category: "Protein", Price: 100}},
		bundles:  []model.Bundle{{ID: "a", DiscountPercent: 20, FixedPrice: &fixed, Items: []model.BundleItem{{Keyword: "whey"}}}},
	}
	s := loadedStore(t, api)

	views := s.Views()

	require.Len(t, views, 1)
	assert.Equal(t, 40.0, views[0].EffectivePrice)
	assert.Equal(t, 60.0, views[0].Savings)
	assert.Equal(t, views, s.Views())
}

func TestStore_EndToEnd(t *testing.T) {
	var posted []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == ProductsPath:
			_, _ = w.Write([]byte(`[{"id":1,"name":"Creatine","category":"creatine","price":20}]`))
		case r.Method == http.MethodGet && r.URL.Path == BundlesPath:
			_, _ = w.Write([]byte(`[]`))
		case r.Method == http.MethodPost && r.URL.Path == AdminBundlesPath:
			buf := new(bytes.Buffer)
			_, _ = buf.ReadFrom(r.Body)
			posted = buf.Bytes()
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write(posted)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewStore(NewAPIClient(srv.URL, WithAuth(BearerToken("t"))))
	defer s.Close()
	s.Load(context.Background())

	s.UpdateForm(func(f *Form) {
		f.Name = "Strength Starter"
		f.Items = []model.BundleItem{{Category: "strength"}}
	})
	require.NoError(t, s.Commit(context.Background()))

	assert.Contains(t, string(posted), `"id":"strength-starter"`)
	views := s.Views()
	require.Len(t, views, 1)
	assert.Equal(t, 20.0, views[0].TotalUnitPrice)
}
