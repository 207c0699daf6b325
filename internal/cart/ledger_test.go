package cart

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sahil6458/MapleEats/internal/models"
)

func testProduct(name string, price float64) models.Product {
	return models.Product{
		ID:    primitive.NewObjectID(),
		Name:  name,
		Price: price,
	}
}

func TestAddItemNeverMergesLines(t *testing.T) {
	ledger := NewLedger()
	burger := testProduct("Classic Cheeseburger", 11.99)

	first := ledger.AddItem(burger, 1, nil, nil)
	second := ledger.AddItem(burger, 1, nil, nil)

	items := ledger.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(items))
	}
	if first.ID == second.ID {
		t.Fatal("expected each add to generate a fresh line id")
	}
}

func TestAddItemResolvesCustomizedPrice(t *testing.T) {
	ledger := NewLedger()
	pizza := testProduct("Margherita Pizza", 12.99)
	catalog := []models.CustomizationOption{
		{
			ID:          "size",
			Required:    true,
			MultiSelect: false,
			Choices: []models.OptionChoice{
				{ID: "size-m", PriceAdjustment: 0, IsDefault: true},
				{ID: "size-l", PriceAdjustment: 4.00},
			},
		},
	}
	customization := &models.ProductCustomization{
		ProductID:  pizza.ID.Hex(),
		Selections: map[string]models.SelectionValue{"size": {ChoiceID: "size-l"}},
	}

	item := ledger.AddItem(pizza, 2, customization, catalog)

	if math.Abs(item.Price-16.99) > 1e-9 {
		t.Fatalf("expected unit price 16.99, got %v", item.Price)
	}
	if math.Abs(item.TotalPrice-33.98) > 1e-9 {
		t.Fatalf("expected line total 33.98, got %v", item.TotalPrice)
	}
}

func TestDerivedTotalsMatchLines(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(testProduct("Buffalo Wings", 9.99), 2, nil, nil)
	ledger.AddItem(testProduct("Fresh Lemonade", 3.49), 3, nil, nil)

	if got := ledger.TotalItems(); got != 5 {
		t.Fatalf("expected 5 total items, got %d", got)
	}

	wantSubtotal := 0.0
	for _, item := range ledger.Items() {
		if math.Abs(item.TotalPrice-item.Price*float64(item.Quantity)) > 1e-9 {
			t.Fatalf("line %s: totalPrice %v != price*quantity", item.ID, item.TotalPrice)
		}
		wantSubtotal += item.TotalPrice
	}
	if got := ledger.Subtotal(); math.Abs(got-wantSubtotal) > 1e-9 {
		t.Fatalf("expected subtotal %v, got %v", wantSubtotal, got)
	}
}

func TestUpdateQuantityRefusesBelowOne(t *testing.T) {
	ledger := NewLedger()
	item := ledger.AddItem(testProduct("Loaded Nachos", 10.99), 2, nil, nil)

	if ledger.UpdateQuantity(item.ID, 0) {
		t.Fatal("expected quantity 0 to be refused")
	}

	items := ledger.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected line untouched, got %+v", items)
	}

	// Decrement-to-zero is the caller's removal path, not the ledger's.
	if !ledger.RemoveItem(item.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(ledger.Items()) != 0 {
		t.Fatal("expected empty ledger after removal")
	}
}

func TestUpdateQuantityRecomputesTotal(t *testing.T) {
	ledger := NewLedger()
	item := ledger.AddItem(testProduct("Cold Brew Coffee", 4.99), 1, nil, nil)

	if !ledger.UpdateQuantity(item.ID, 4) {
		t.Fatal("expected update to succeed")
	}

	updated := ledger.Items()[0]
	if updated.Quantity != 4 || math.Abs(updated.TotalPrice-19.96) > 1e-9 {
		t.Fatalf("expected quantity 4 total 19.96, got %+v", updated)
	}
}

func TestClearEmptiesLedger(t *testing.T) {
	ledger := NewLedger()
	ledger.AddItem(testProduct("Supreme Pizza", 16.99), 1, nil, nil)
	ledger.Clear()

	if ledger.TotalItems() != 0 || ledger.Subtotal() != 0 {
		t.Fatal("expected cleared ledger to derive zero totals")
	}
}
