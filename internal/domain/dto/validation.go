package dto

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// Bundle form field names, as they appear in JSON.
const (
	FieldName       = "name"
	FieldDiscount   = "discountPercent"
	FieldFixedPrice = "fixedPrice"
	FieldItems      = "items"
)

// User-facing validation messages.
const (
	MsgNameRequired      = "Name is required"
	MsgDiscountRange     = "Discount must be between 0 and 90"
	MsgItemsRequired     = "At least one item with category or keyword is required"
	MsgFixedPriceInvalid = "Fixed price must be a non-negative number"
)

var fieldMessages = map[string]string{
	FieldName:       MsgNameRequired,
	FieldDiscount:   MsgDiscountRange,
	FieldItems:      MsgItemsRequired,
	FieldFixedPrice: MsgFixedPriceInvalid,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("bundle_items", validateBundleItems)
	return v
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateBundleItems requires at least one item carrying a category or keyword.
func validateBundleItems(fl validator.FieldLevel) bool {
	items, ok := fl.Field().Interface().([]model.BundleItem)
	if !ok {
		return false
	}
	return model.Bundle{Items: items}.HasRequirement()
}

// FieldErrors maps a JSON field name to its user-facing message.
type FieldErrors map[string]string

// Error joins the messages in field order.
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e[k])
	}
	return strings.Join(msgs, "; ")
}

// validateStruct runs the struct tags and converts failures to FieldErrors.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	return fe.Field() + " failed " + fe.Tag()
}

// ValidateBundle applies the create rules to an existing bundle value.
func ValidateBundle(b model.Bundle) FieldErrors {
	req := BundleRequest{
		Name:            b.Name,
		DiscountPercent: b.DiscountPercent,
		FixedPrice:      FloatValue(b.FixedPrice),
		Items:           b.Items,
	}
	if err := req.Validate(); err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			return fe
		}
		return FieldErrors{"": err.Error()}
	}
	return nil
}
