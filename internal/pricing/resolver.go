// Package pricing resolves a cart line's unit price from a product's base
// price and its customization selections.
package pricing

import (
	"github.com/Sahil6458/MapleEats/internal/models"
)

// ResolveUnitPrice starts from basePrice and adds the price adjustment of
// every selected choice. Variants contribute their single choice, modifiers
// the sum over all selected choices. Selections referencing option or choice
// ids missing from the catalog contribute zero; stale customization state
// must not fail pricing. The result is not clamped: adjustments may be
// negative and a pathological table can drive the price below zero, which
// callers guard against where it matters.
func ResolveUnitPrice(basePrice float64, customization models.ProductCustomization, catalog []models.CustomizationOption) float64 {
	price := basePrice

	for optionID, selection := range customization.Selections {
		option, ok := findOption(catalog, optionID)
		if !ok {
			continue
		}

		if !option.MultiSelect {
			price += adjustmentFor(option, selection.ChoiceID)
			continue
		}

		for _, choiceID := range selection.ChoiceIDs {
			price += adjustmentFor(option, choiceID)
		}
	}

	return price
}

func findOption(catalog []models.CustomizationOption, optionID string) (models.CustomizationOption, bool) {
	for _, option := range catalog {
		if option.ID == optionID {
			return option, true
		}
	}
	return models.CustomizationOption{}, false
}

func adjustmentFor(option models.CustomizationOption, choiceID string) float64 {
	for _, choice := range option.Choices {
		if choice.ID == choiceID {
			return choice.PriceAdjustment
		}
	}
	return 0
}
