// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// OptionalFloat is a JSON number that remembers whether its key was present.
// Null, an empty string, a non-numeric string and NaN all decode to a present nil value.
type OptionalFloat struct {
	Set   bool
	Value *float64
}

// UnmarshalJSON is only invoked when the key exists in the payload.
func (f *OptionalFloat) UnmarshalJSON(data []byte) error {
	f.Set = true
	f.Value = nil

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(v) {
			return nil
		}
		f.Value = &v
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// MarshalJSON emits the value or null.
func (f OptionalFloat) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

// FloatValue returns a present OptionalFloat holding v.
func FloatValue(v *float64) OptionalFloat {
	return OptionalFloat{Set: true, Value: v}
}

// BundleRequest is the JSON body for creating a bundle.
//
// The slug is taken from ID, then Slug, then Name.
//
// @Description Request to create a bundle
type BundleRequest struct {
	ID              string             `json:"id,omitempty" example:"strength-starter"`
	Slug            string             `json:"slug,omitempty"`
	Name            string             `json:"name" validate:"notblank" example:"Strength Starter"`
	Description     string             `json:"description" example:"Everything for your first cycle"`
	DiscountPercent float64            `json:"discountPercent" validate:"gte=0,lte=90" example:"15"`
	FixedPrice      OptionalFloat      `json:"fixedPrice" swaggertype:"number" example:"39.9"`
	ImageURL        string             `json:"imageUrl"`
	Items           []model.BundleItem `json:"items" validate:"bundle_items"`
} // @name BundleRequest

// SlugSource returns the first non-blank of ID, Slug and Name.
func (r *BundleRequest) SlugSource() string {
	for _, s := range []string{r.ID, r.Slug, r.Name} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Validate checks the name, discount and item rules.
func (r *BundleRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.FixedPrice.Value != nil && *r.FixedPrice.Value < 0 {
		return FieldErrors{FieldFixedPrice: MsgFixedPriceInvalid}
	}
	return nil
}

// ToBundle maps the request onto a new bundle with the given slug.
func (r *BundleRequest) ToBundle(slug string) *model.Bundle {
	return &model.Bundle{
		ID:              slug,
		Slug:            slug,
		Name:            strings.TrimSpace(r.Name),
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		FixedPrice:      r.FixedPrice.Value,
		ImageURL:        r.ImageURL,
		Items:           r.Items,
	}
}

// UpdateBundleRequest is the JSON body for a partial bundle update.
// Only keys present in the payload are applied.
//
// @Description Partial bundle update
type UpdateBundleRequest struct {
	Name            *string            `json:"name,omitempty" example:"Strength Starter"`
	Description     *string            `json:"description,omitempty"`
	DiscountPercent *float64           `json:"discountPercent,omitempty" example:"20"`
	FixedPrice      OptionalFloat      `json:"fixedPrice" swaggertype:"number"`
	ImageURL        *string            `json:"imageUrl,omitempty"`
	Items           []model.BundleItem `json:"items,omitempty"`
} // @name UpdateBundleRequest

// Validate checks only the fields that are present.
func (r *UpdateBundleRequest) Validate() error {
	errs := FieldErrors{}
	if r.Name != nil && validate.Var(*r.Name, "notblank") != nil {
		errs[FieldName] = MsgNameRequired
	}
	if r.DiscountPercent != nil && validate.Var(*r.DiscountPercent, "gte=0,lte=90") != nil {
		errs[FieldDiscount] = MsgDiscountRange
	}
	if r.Items != nil && validate.Var(r.Items, "bundle_items") != nil {
		errs[FieldItems] = MsgItemsRequired
	}
	if r.FixedPrice.Value != nil && *r.FixedPrice.Value < 0 {
		errs[FieldFixedPrice] = MsgFixedPriceInvalid
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Apply merges the present fields into b.
func (r *UpdateBundleRequest) Apply(b *model.Bundle) {
	if r.Name != nil {
		b.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.DiscountPercent != nil {
		b.DiscountPercent = *r.DiscountPercent
	}
	if r.FixedPrice.Set {
		b.FixedPrice = r.FixedPrice.Value
	}
	if r.ImageURL != nil {
		b.ImageURL = *r.ImageURL
	}
	if r.Items != nil {
		b.Items = r.Items
	}
}
