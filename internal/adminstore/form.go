package adminstore

import (
	"math"
	"strconv"
	"strings"

	"github.com/guttosm/bundle-service/internal/domain/dto"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

// ItemField names an editable column of an item row.
type ItemField string

// Editable item columns.
const (
	ItemCategory  ItemField = "category"
	ItemKeyword   ItemField = "keyword"
	ItemProductID ItemField = "productId"
)

// Form is the bundle being created or edited.
// FixedPrice holds the raw input; it is parsed on commit.
type Form struct {
	ID              string
	Name            string
	Description     string
	DiscountPercent float64
	FixedPrice      string
	ImageURL        string
	Items           []model.BundleItem
}

// EmptyForm returns a blank form with a single blank item row.
func EmptyForm() Form {
	return Form{Items: []model.BundleItem{{}}}
}

// formFromBundle loads an existing bundle into a form.
func formFromBundle(b model.Bundle) Form {
	f := Form{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		DiscountPercent: b.DiscountPercent,
		ImageURL:        b.ImageURL,
		Items:           append([]model.BundleItem(nil), b.Items...),
	}
	if b.FixedPrice != nil {
		f.FixedPrice = strconv.FormatFloat(*b.FixedPrice, 'f', -1, 64)
	}
	return f
}

func (f Form) clone() Form {
	f.Items = append([]model.BundleItem(nil), f.Items...)
	return f
}

// Validate applies the bundle form rules.
func (f Form) Validate() dto.FieldErrors {
	return dto.ValidateBundle(model.Bundle{
		Name:            f.Name,
		DiscountPercent: f.DiscountPercent,
		Items:           f.Items,
	})
}

// Slug is the id sent on commit: the explicit id, or one derived from the name.
func (f Form) Slug() string {
	if f.ID != "" {
		return f.ID
	}
	return model.Slugify(f.Name)
}

// SlugPreview is the slug shown while typing.
func (f Form) SlugPreview() string {
	src := f.ID
	if src == "" {
		src = f.Name
	}
	return model.Slugify(src)
}

// Payload builds the bundle sent to the API.
func (f Form) Payload() model.Bundle {
	items := make([]model.BundleItem, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, model.BundleItem{
			Category:  it.Category,
			Keyword:   it.Keyword,
			ProductID: it.ProductID,
		})
	}

	return model.Bundle{
		ID:              f.Slug(),
		Name:            f.Name,
		Description:     f.Description,
		DiscountPercent: f.DiscountPercent,
		FixedPrice:      ParseFixedPrice(f.FixedPrice),
		ImageURL:        f.ImageURL,
		Items:           items,
	}
}

// ParseFixedPrice turns raw input into a price. Empty, non-numeric, infinite
// and negative input all mean no fixed price.
func ParseFixedPrice(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

func (f *Form) setItemField(i int, field ItemField, value string) {
	switch field {
	case ItemCategory:
		f.Items[i].Category = value
	case ItemKeyword:
		f.Items[i].Keyword = value
	case ItemProductID:
		f.Items[i].ProductID = model.ParseProductID(value)
	}
}
