// Package catalog ingests storefront product listings into normalized products.
//
// Upstream listings vary in shape: a bare array or an envelope object, categories
// as strings or objects, and several price field names. Decode is the single
// place that knows about those shapes.
package catalog

import (
	"github.com/tidwall/gjson"

	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/service"
)

// envelopeKeys are tried in order when the body is an object.
var envelopeKeys = []string{"products", "data", "items"}

var (
	categoryKeys     = []string{"category", "category_name", "categoryName"}
	categoryNameKeys = []string{"name", "slug"}
	priceKeys        = []string{"price", "current_price", "salePrice"}
	imageKeys        = []string{"image_url", "imageUrl", "image"}
)

// Decode unwraps the product array from body and normalizes every entry.
// Unknown shapes and invalid JSON yield an empty slice, never an error.
func Decode(body []byte) []model.Product {
	if !gjson.ValidBytes(body) {
		return []model.Product{}
	}

	list := unwrap(gjson.ParseBytes(body))
	if !list.IsArray() {
		return []model.Product{}
	}

	elems := list.Array()
	products := make([]model.Product, 0, len(elems))
	for _, el := range elems {
		if !el.IsObject() {
			continue
		}
		products = append(products, decodeProduct(el))
	}
	return products
}

func unwrap(root gjson.Result) gjson.Result {
	if root.IsArray() {
		return root
	}
	for _, key := range envelopeKeys {
		if r := root.Get(key); r.IsArray() {
			return r
		}
	}
	return gjson.Result{}
}

func decodeProduct(el gjson.Result) model.Product {
	return model.Product{
		ID:       model.ParseProductID(el.Get("id").String()),
		Name:     el.Get("name").String(),
		Category: service.NormalizeCategory(rawCategory(el)),
		Price:    firstPresent(el, priceKeys).Float(),
		ImageURL: firstPresent(el, imageKeys).String(),
	}
}

// rawCategory reads the category label. A "category" that is an object (or null)
// contributes its name or slug and never falls back to the flat keys.
func rawCategory(el gjson.Result) string {
	c := el.Get("category")
	if c.IsObject() || c.IsArray() || (c.Exists() && c.Type == gjson.Null) {
		return firstPresent(c, categoryNameKeys).String()
	}
	return firstPresent(el, categoryKeys).String()
}

// firstPresent returns the first key that exists with a non-null value.
func firstPresent(obj gjson.Result, keys []string) gjson.Result {
	for _, key := range keys {
		if r := obj.Get(key); r.Exists() && r.Type != gjson.Null {
			return r
		}
	}
	return gjson.Result{}
}
