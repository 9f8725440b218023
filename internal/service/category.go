// Package service prices product bundles and implements the bundle, auth and audit services.
package service

import "strings"

// Taxonomy categories produced by NormalizeCategory.
const (
	CategoryProtein     = "Protein"
	CategoryPreWorkout  = "Pre-Workout"
	CategoryRecovery    = "Recovery"
	CategoryStrength    = "Strength"
	CategoryVitamines   = "Vitamines"
	CategoryPerformance = "Performance"
)

// categoryRule maps any of its substrings to a taxonomy category.
type categoryRule struct {
	needles  []string
	category string
}

// categoryRules are evaluated in order and the first match wins.
// "pre" is checked before "strength" and "recover", so "Pre-Strength" is Pre-Workout.
var categoryRules = []categoryRule{
	{needles: []string{"protein", "whey"}, category: CategoryProtein},
	{needles: []string{"pre"}, category: CategoryPreWorkout},
	{needles: []string{"recover", "bcaa"}, category: CategoryRecovery},
	{needles: []string{"strength", "creatin"}, category: CategoryStrength},
	{needles: []string{"vitamin"}, category: CategoryVitamines},
	{needles: []string{"omega", "fish"}, category: CategoryPerformance},
}

// NormalizeCategory maps a free-form category label onto the storefront taxonomy.
// Matching is a case-insensitive substring test. Unknown and empty labels
// fall back to Performance.
func NormalizeCategory(raw string) string {
	c := strings.ToLower(raw)
	for _, rule := range categoryRules {
		for _, needle := range rule.needles {
			if strings.Contains(c, needle) {
				return rule.category
			}
		}
	}
	return CategoryPerformance
}
