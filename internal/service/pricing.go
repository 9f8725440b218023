package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// round2 rounds half away from zero to cents, matching toFixed(2) on the decimal value.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// money converts a float amount, treating NaN and infinities as zero.
func money(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ComputeBundlePrice prices a bundle from its resolved products.
//
// The discounted total is total*(1-discount/100). A fixed price greater than zero
// replaces it. Savings never go below zero, so a fixed price above the total
// yields zero savings.
func ComputeBundlePrice(bundle model.Bundle, resolved []model.Product) model.PriceBreakdown {
	total := decimal.Zero
	for _, p := range resolved {
		total = total.Add(money(p.Price))
	}

	var effective decimal.Decimal
	if bundle.HasFixedPrice() {
		effective = round2(money(*bundle.FixedPrice))
	} else {
		factor := decimal.NewFromInt(1).Sub(money(bundle.DiscountPercent).Div(hundred))
		effective = round2(total.Mul(factor))
	}

	savings := round2(total.Sub(effective))
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return model.PriceBreakdown{
		TotalUnitPrice: round2(total).InexactFloat64(),
		EffectivePrice: effective.InexactFloat64(),
		Savings:        savings.InexactFloat64(),
	}
}

// emptyCatalogPrice is the breakdown used when no catalog is loaded.
func emptyCatalogPrice(bundle model.Bundle) model.PriceBreakdown {
	var effective float64
	if bundle.HasFixedPrice() {
		effective = round2(money(*bundle.FixedPrice)).InexactFloat64()
	}
	return model.PriceBreakdown{EffectivePrice: effective}
}
