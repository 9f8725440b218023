// Package model defines the core domain entities for the bundle service.
package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ProductID identifies a catalog product.
// Upstream catalogs send ids as numbers or strings; both decode to the same
// canonical string so "12", 12 and 12.0 compare equal.
type ProductID string

// IsZero reports whether the id is empty.
func (id ProductID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ParseProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ParseProductID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as JSON numbers and everything else as strings.
func (id ProductID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// ParseProductID canonicalizes a raw id. Integral numeric strings lose any
// fractional zeros and surrounding whitespace.
func ParseProductID(raw string) ProductID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return ProductID(strconv.FormatInt(int64(f), 10))
	}
	return ProductID(s)
}

// Product is a catalog product as seen by the bundle engine.
// Category is always the normalized taxonomy value.
//
// @Description Catalog product resolved into a bundle
type Product struct {
	ID       ProductID `json:"id" swaggertype:"string" example:"12"`
	Name     string    `json:"name" example:"Whey Isolate 2kg"`
	Category string    `json:"category" example:"Protein"`
	Price    float64   `json:"price" example:"49.9"`
	ImageURL string    `json:"imageUrl,omitempty"`
}
