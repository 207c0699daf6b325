package pricing

import (
	"math"
	"testing"

	"github.com/Sahil6458/MapleEats/internal/models"
)

func pizzaCatalog() []models.CustomizationOption {
	return []models.CustomizationOption{
		{
			ID:          "size",
			Name:        "Size",
			Required:    true,
			MultiSelect: false,
			Choices: []models.OptionChoice{
				{ID: "size-s", Name: "Small", PriceAdjustment: -3.00},
				{ID: "size-m", Name: "Medium", PriceAdjustment: 0, IsDefault: true},
				{ID: "size-l", Name: "Large", PriceAdjustment: 4.00},
			},
		},
		{
			ID:            "toppings",
			Name:          "Extra Toppings",
			MultiSelect:   true,
			MaxSelections: 8,
			Choices: []models.OptionChoice{
				{ID: "top-cheese", Name: "Extra Cheese", PriceAdjustment: 2.99},
				{ID: "top-mushroom", Name: "Mushrooms", PriceAdjustment: 1.99},
				{ID: "top-olive", Name: "Olives", PriceAdjustment: 1.99},
			},
		},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveUnitPriceSumsVariantAndModifiers(t *testing.T) {
	customization := models.ProductCustomization{
		ProductID: "p7",
		Selections: map[string]models.SelectionValue{
			"size":     {ChoiceID: "size-l"},
			"toppings": {ChoiceIDs: []string{"top-cheese", "top-olive"}},
		},
	}

	got := ResolveUnitPrice(12.99, customization, pizzaCatalog())
	want := 12.99 + 4.00 + 2.99 + 1.99
	if !almostEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveUnitPriceNegativeAdjustmentNotClamped(t *testing.T) {
	customization := models.ProductCustomization{
		ProductID: "p7",
		Selections: map[string]models.SelectionValue{
			"size": {ChoiceID: "size-s"},
		},
	}

	got := ResolveUnitPrice(2.00, customization, pizzaCatalog())
	if !almostEqual(got, -1.00) {
		t.Fatalf("expected unclamped -1.00, got %v", got)
	}
}

func TestResolveUnitPriceIgnoresUnknownIDs(t *testing.T) {
	customization := models.ProductCustomization{
		ProductID: "p7",
		Selections: map[string]models.SelectionValue{
			"size":     {ChoiceID: "size-xxl"},
			"crust":    {ChoiceID: "crust-thin"},
			"toppings": {ChoiceIDs: []string{"top-cheese", "top-removed"}},
		},
	}

	got := ResolveUnitPrice(10.00, customization, pizzaCatalog())
	if !almostEqual(got, 12.99) {
		t.Fatalf("expected stale ids ignored, got %v", got)
	}
}

func TestResolveUnitPriceIdempotent(t *testing.T) {
	customization := models.ProductCustomization{
		ProductID: "p7",
		Selections: map[string]models.SelectionValue{
			"size":     {ChoiceID: "size-m"},
			"toppings": {ChoiceIDs: []string{"top-mushroom", "top-olive", "top-cheese"}},
		},
	}

	first := ResolveUnitPrice(12.99, customization, pizzaCatalog())
	for i := 0; i < 20; i++ {
		if got := ResolveUnitPrice(12.99, customization, pizzaCatalog()); !almostEqual(got, first) {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}

func TestResolveUnitPriceEmptySelections(t *testing.T) {
	got := ResolveUnitPrice(8.49, models.ProductCustomization{ProductID: "p2"}, pizzaCatalog())
	if !almostEqual(got, 8.49) {
		t.Fatalf("expected base price, got %v", got)
	}
}
