package service

import (
	"strings"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// usedSet tracks the products already chosen for one bundle.
type usedSet map[model.ProductID]struct{}

func (u usedSet) has(id model.ProductID) bool {
	_, ok := u[id]
	return ok
}

// catalogIndex is a product slice plus an id lookup, built once per derivation pass.
type catalogIndex struct {
	products []model.Product
	byID     map[model.ProductID]int
}

func newCatalogIndex(products []model.Product) *catalogIndex {
	idx := &catalogIndex{
		products: products,
		byID:     make(map[model.ProductID]int, len(products)),
	}
	for i, p := range products {
		// Earliest product wins on duplicate ids.
		if _, exists := idx.byID[p.ID]; !exists {
			idx.byID[p.ID] = i
		}
	}
	return idx
}

// firstUnused returns the earliest unused product matching pred.
func (c *catalogIndex) firstUnused(used usedSet, pred func(model.Product) bool) (model.Product, bool) {
	for _, p := range c.products {
		if used.has(p.ID) {
			continue
		}
		if pred(p) {
			return p, true
		}
	}
	return model.Product{}, false
}

// picker is one resolution strategy. It returns false to fall through.
type picker func(c *catalogIndex, item model.BundleItem, used usedSet) (model.Product, bool)

// pickers run in order for each requirement: explicit id, keyword, category, anything unused.
var pickers = []picker{
	pickByID,
	pickByKeyword,
	pickByCategory,
	pickAny,
}

func pickByID(c *catalogIndex, item model.BundleItem, used usedSet) (model.Product, bool) {
	if item.ProductID.IsZero() {
		return model.Product{}, false
	}
	i, ok := c.byID[item.ProductID]
	if !ok || used.has(item.ProductID) {
		return model.Product{}, false
	}
	return c.products[i], true
}

func pickByKeyword(c *catalogIndex, item model.BundleItem, used usedSet) (model.Product, bool) {
	kw := strings.ToLower(item.Keyword)
	if kw == "" {
		return model.Product{}, false
	}
	return c.firstUnused(used, func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw)
	})
}

// pickByCategory matches the normalized category, or a product whose name contains it.
// An empty category normalizes to Performance like any other unknown label.
func pickByCategory(c *catalogIndex, item model.BundleItem, used usedSet) (model.Product, bool) {
	target := NormalizeCategory(item.Category)
	lowered := strings.ToLower(target)
	return c.firstUnused(used, func(p model.Product) bool {
		return p.Category == target || strings.Contains(strings.ToLower(p.Name), lowered)
	})
}

func pickAny(c *catalogIndex, _ model.BundleItem, used usedSet) (model.Product, bool) {
	return c.firstUnused(used, func(model.Product) bool { return true })
}

// Resolution is the outcome of resolving one bundle's requirements.
type Resolution struct {
	Products   []model.Product
	Unresolved int
}

// ResolveBundleItems picks one distinct catalog product per requirement, in order.
// Requirements that cannot be satisfied are skipped and counted, never reported as errors.
// The catalog order decides every tie.
func ResolveBundleItems(items []model.BundleItem, catalog []model.Product) Resolution {
	return newCatalogIndex(catalog).resolve(items)
}

func (c *catalogIndex) resolve(items []model.BundleItem) Resolution {
	used := make(usedSet, len(items))
	res := Resolution{Products: make([]model.Product, 0, len(items))}

	for _, item := range items {
		chosen, ok := c.pick(item, used)
		if !ok {
			res.Unresolved++
			continue
		}
		used[chosen.ID] = struct{}{}
		res.Products = append(res.Products, chosen)
	}
	return res
}

func (c *catalogIndex) pick(item model.BundleItem, used usedSet) (model.Product, bool) {
	for _, p := range pickers {
		if chosen, ok := p(c, item, used); ok {
			return chosen, true
		}
	}
	return model.Product{}, false
}
