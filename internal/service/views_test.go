package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

func testBundles() []model.Bundle {
	return []model.Bundle{
		{
			ID:              "stack",
			Name:            "Stack",
			DiscountPercent: 10,
			Items:           []model.BundleItem{{Keyword: "whey"}, {Category: "creatine"}},
		},
		{
			ID:         "fixed",
			Name:       "Fixed",
			FixedPrice: price(45),
			Items:      []model.BundleItem{{ProductID: "3"}},
		},
	}
}

func TestDeriveViews(t *testing.T) {
	views := DeriveViews(testBundles(), testCatalog())

	require.Len(t, views, 2)

	assert.Equal(t, "stack", views[0].ID)
	assert.Equal(t, []model.ProductID{"1", "4"}, ids(views[0].ResolvedItems))
	assert.Equal(t, 70.0, views[0].TotalUnitPrice)
	assert.Equal(t, 63.0, views[0].EffectivePrice)
	assert.Equal(t, 7.0, views[0].Savings)
	assert.Zero(t, views[0].UnresolvedCount)

	assert.Equal(t, []model.ProductID{"3"}, ids(views[1].ResolvedItems))
	assert.Equal(t, 30.0, views[1].TotalUnitPrice)
	assert.Equal(t, 45.0, views[1].EffectivePrice)
	assert.Equal(t, 0.0, views[1].Savings)
}

func TestDeriveViews_UsedSetResetsPerBundle(t *testing.T) {
	bundles := []model.Bundle{
		{ID: "a", Items: []model.BundleItem{{ProductID: "1"}}},
		{ID: "b", Items: []model.BundleItem{{ProductID: "1"}}},
	}

	views := DeriveViews(bundles, testCatalog())

	assert.Equal(t, []model.ProductID{"1"}, ids(views[0].ResolvedItems))
	assert.Equal(t, []model.ProductID{"1"}, ids(views[1].ResolvedItems))
}

func TestDeriveViews_EmptyCatalog(t *testing.T) {
	bundles := []model.Bundle{
		{ID: "fixed", FixedPrice: price(39.9), DiscountPercent: 20, Items: []model.BundleItem{{Keyword: "whey"}}},
		{ID: "discount", DiscountPercent: 20, Items: []model.BundleItem{{}, {}}},
		{ID: "zero-fixed", FixedPrice: price(0)},
		{ID: "nan-fixed", FixedPrice: price(math.NaN())},
	}

	views := DeriveViews(bundles, []model.Product{})

	require.Len(t, views, 4)
	for _, v := range views {
		assert.Zero(t, v.TotalUnitPrice, v.ID)
		assert.Zero(t, v.Savings, v.ID)
		assert.NotNil(t, v.ResolvedItems, v.ID)
		assert.Empty(t, v.ResolvedItems, v.ID)
	}
	assert.Equal(t, 39.9, views[0].EffectivePrice)
	assert.Equal(t, 0.0, views[1].EffectivePrice)
	assert.Equal(t, 2, views[1].UnresolvedCount)
	assert.Equal(t, 0.0, views[2].EffectivePrice)
	assert.Equal(t, 0.0, views[3].EffectivePrice)
}

func TestDeriveViews_CountsUnresolved(t *testing.T) {
	bundles := []model.Bundle{{ID: "big", Items: make([]model.BundleItem, 3)}}
	catalog := testCatalog()[:2]

	views := DeriveViews(bundles, catalog)

	assert.Len(t, views[0].ResolvedItems, 2)
	assert.Equal(t, 1, views[0].UnresolvedCount)
}

func TestViewDeriver_Memoizes(t *testing.T) {
	c := cache.NewTTL[uint64, []model.BundleView]("test_views", 10, time.Minute)
	d := NewViewDeriver(WithViewCache(c))
	defer d.Stop()

	first := d.Derive(testBundles(), testCatalog())
	second := d.Derive(testBundles(), testCatalog())

	assert.Equal(t, first, second)
	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
}

func TestViewDeriver_RecomputesWhenInputsChange(t *testing.T) {
	d := NewViewDeriver(WithViewCache(cache.NewTTL[uint64, []model.BundleView]("test_views", 10, time.Minute)))
	defer d.Stop()

	bundles := testBundles()
	before := d.Derive(bundles, testCatalog())

	bundles[0].DiscountPercent = 50
	after := d.Derive(bundles, testCatalog())

	assert.Equal(t, 63.0, before[0].EffectivePrice)
	assert.Equal(t, 35.0, after[0].EffectivePrice)

	catalog := testCatalog()
	catalog[0].Price = 60
	assert.Equal(t, 40.0, d.Derive(bundles, catalog)[0].EffectivePrice)
}

func TestViewDeriver_WithoutCache(t *testing.T) {
	d := NewViewDeriver()

	assert.Equal(t, DeriveViews(testBundles(), testCatalog()), d.Derive(testBundles(), testCatalog()))
	assert.NotPanics(t, func() {
		d.InvalidateCache()
		d.Stop()
	})
}

func TestViewDeriver_InvalidateCache(t *testing.T) {
	c := cache.NewTTL[uint64, []model.BundleView]("test_views", 10, time.Minute)
	d := NewViewDeriver(WithViewCache(c))
	defer d.Stop()

	d.Derive(testBundles(), testCatalog())
	d.InvalidateCache()

	assert.Equal(t, 0, c.Metrics().Size)
}

func TestFingerprint(t *testing.T) {
	base := Fingerprint(testBundles(), testCatalog())
	assert.Equal(t, base, Fingerprint(testBundles(), testCatalog()))

	bundles := testBundles()
	bundles[1].FixedPrice = nil
	assert.NotEqual(t, base, Fingerprint(bundles, testCatalog()))

	bundles = testBundles()
	bundles[0].Items[0].Keyword = "whe"
	assert.NotEqual(t, base, Fingerprint(bundles, testCatalog()))

	catalog := testCatalog()
	catalog[4].Category = CategoryRecovery
	assert.NotEqual(t, base, Fingerprint(testBundles(), catalog))

	// field boundaries are length-prefixed
	a := []model.Product{{ID: "ab", Name: "c"}}
	b := []model.Product{{ID: "a", Name: "bc"}}
	assert.NotEqual(t, Fingerprint(nil, a), Fingerprint(nil, b))
}
