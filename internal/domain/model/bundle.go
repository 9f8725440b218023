package model

import (
	"math"
	"strings"
	"time"
)

// BundleItem is a single requirement inside a bundle.
// Any combination of the three hints may be set; ProductID wins when it resolves.
//
// @Description Bundle item requirement
type BundleItem struct {
	Category  string    `json:"category" example:"protein"`
	Keyword   string    `json:"keyword" example:"whey"`
	ProductID ProductID `json:"productId" swaggertype:"string" example:""`
}

// IsEmpty reports whether the requirement carries no hint at all.
func (i BundleItem) IsEmpty() bool {
	return strings.TrimSpace(i.Category) == "" &&
		strings.TrimSpace(i.Keyword) == "" &&
		i.ProductID.IsZero()
}

// Bundle is an admin-defined product package sold at a combined price.
//
// @Description Product bundle
type Bundle struct {
	// ID is the public slug of the bundle
	ID string `json:"id" example:"strength-starter"`
	// Slug mirrors ID
	Slug            string       `json:"slug,omitempty" example:"strength-starter"`
	Name            string       `json:"name" example:"Strength Starter"`
	Description     string       `json:"description"`
	DiscountPercent float64      `json:"discountPercent" example:"15"`
	FixedPrice      *float64     `json:"fixedPrice" example:"39.9"`
	ImageURL        string       `json:"imageUrl"`
	Items           []BundleItem `json:"items"`
	CreatedAt       *time.Time   `json:"created_at,omitempty"`
	UpdatedAt       *time.Time   `json:"updated_at,omitempty"`
}

// HasFixedPrice reports whether the fixed price overrides the discount.
func (b Bundle) HasFixedPrice() bool {
	return b.FixedPrice != nil && !math.IsNaN(*b.FixedPrice) && *b.FixedPrice > 0
}

// HasRequirement reports whether at least one item carries a hint.
func (b Bundle) HasRequirement() bool {
	for _, it := range b.Items {
		if !it.IsEmpty() {
			return true
		}
	}
	return false
}

// PriceBreakdown holds the monetary outputs of a bundle price calculation.
type PriceBreakdown struct {
	TotalUnitPrice float64 `json:"totalUnitPrice" example:"100"`
	EffectivePrice float64 `json:"effectivePrice" example:"75"`
	Savings        float64 `json:"savings" example:"25"`
}

// BundleView is a bundle together with its resolved products and prices.
// It is derived on demand and never persisted.
//
// @Description Bundle with resolved products and computed prices
type BundleView struct {
	Bundle
	PriceBreakdown
	ResolvedItems []Product `json:"resolvedItems"`
	// UnresolvedCount is the number of requirements no product could satisfy
	UnresolvedCount int `json:"unresolvedCount" example:"0"`
}

// Slugify lowercases name and joins its whitespace-separated words with hyphens.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
