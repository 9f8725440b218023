package service

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/metrics"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

// DeriveViews resolves and prices every bundle against the catalog.
// With an empty catalog nothing resolves: totals and savings are zero and the
// effective price is the fixed price, or zero without one.
func DeriveViews(bundles []model.Bundle, products []model.Product) []model.BundleView {
	views := make([]model.BundleView, 0, len(bundles))

	if len(products) == 0 {
		for _, b := range bundles {
			views = append(views, model.BundleView{
				Bundle:          b,
				PriceBreakdown:  emptyCatalogPrice(b),
				ResolvedItems:   []model.Product{},
				UnresolvedCount: len(b.Items),
			})
		}
		return views
	}

	idx := newCatalogIndex(products)
	for _, b := range bundles {
		res := idx.resolve(b.Items)
		views = append(views, model.BundleView{
			Bundle:          b,
			PriceBreakdown:  ComputeBundlePrice(b, res.Products),
			ResolvedItems:   res.Products,
			UnresolvedCount: res.Unresolved,
		})
	}
	return views
}

// ViewCacheName labels the derived view cache in metrics.
const ViewCacheName = "bundle_views"

// ViewDeriver memoizes DeriveViews on a fingerprint of its inputs.
// Identical (bundles, products) pairs reuse the previous result.
type ViewDeriver struct {
	cache cache.WithMetrics[uint64, []model.BundleView]
}

// ViewOption configures a ViewDeriver.
type ViewOption func(*ViewDeriver)

// WithViewCache sets the memoization cache. Without one every call recomputes.
func WithViewCache(c cache.WithMetrics[uint64, []model.BundleView]) ViewOption {
	return func(d *ViewDeriver) {
		d.cache = c
	}
}

// NewViewDeriver creates a ViewDeriver with the given options.
func NewViewDeriver(opts ...ViewOption) *ViewDeriver {
	d := &ViewDeriver{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Derive returns the views for the inputs, from cache when the fingerprint matches.
func (d *ViewDeriver) Derive(bundles []model.Bundle, products []model.Product) []model.BundleView {
	start := time.Now()

	var key uint64
	if d.cache != nil {
		key = Fingerprint(bundles, products)
		if views, ok := d.cache.Get(key); ok {
			metrics.RecordViewDerivation(time.Since(start), "cached", unresolvedTotal(views))
			return views
		}
	}

	views := DeriveViews(bundles, products)

	if d.cache != nil {
		d.cache.Set(key, views)
		m := d.cache.Metrics()
		metrics.UpdateCacheMetrics(ViewCacheName, m.Size, m.Capacity)
	}
	metrics.RecordViewDerivation(time.Since(start), "computed", unresolvedTotal(views))
	return views
}

// InvalidateCache drops every memoized derivation.
func (d *ViewDeriver) InvalidateCache() {
	if d.cache != nil {
		d.cache.Clear()
	}
}

// Stop releases the cache sweeper.
func (d *ViewDeriver) Stop() {
	if d.cache != nil {
		d.cache.Stop()
	}
}

func unresolvedTotal(views []model.BundleView) int {
	n := 0
	for _, v := range views {
		n += v.UnresolvedCount
	}
	return n
}

// Fingerprint hashes every field that can change a derived view.
func Fingerprint(bundles []model.Bundle, products []model.Product) uint64 {
	h := xxhash.New()
	var buf [8]byte

	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = h.Write(buf[:])
		_, _ = h.WriteString(s)
	}
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	writeCount := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = h.Write(buf[:])
	}
	writeTime := func(t *time.Time) {
		if t == nil {
			writeCount(0)
			return
		}
		writeCount(1)
		binary.LittleEndian.PutUint64(buf[:], uint64(t.UnixNano()))
		_, _ = h.Write(buf[:])
	}

	writeCount(len(products))
	for _, p := range products {
		writeString(string(p.ID))
		writeString(p.Name)
		writeString(p.Category)
		writeFloat(p.Price)
		writeString(p.ImageURL)
	}

	writeCount(len(bundles))
	for _, b := range bundles {
		writeString(b.ID)
		writeString(b.Slug)
		writeString(b.Name)
		writeString(b.Description)
		writeString(b.ImageURL)
		writeFloat(b.DiscountPercent)
		if b.FixedPrice != nil {
			writeCount(1)
			writeFloat(*b.FixedPrice)
		} else {
			writeCount(0)
		}
		writeCount(len(b.Items))
		for _, it := range b.Items {
			writeString(it.Category)
			writeString(it.Keyword)
			writeString(string(it.ProductID))
		}
		writeTime(b.CreatedAt)
		writeTime(b.UpdatedAt)
	}

	return h.Sum64()
}
