package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeProductDocumentCategoryString(t *testing.T) {
	raw := bson.M{
		"name":     "Butter Chicken",
		"price":    14.99,
		"category": "mains",
	}

	product, err := normalizeProductDocument(raw)
	if err != nil {
		t.Fatalf("normalize failed: %v", err)
	}

	if len(product.Category) != 1 || product.Category[0] != "mains" {
		t.Fatalf("expected category list [mains], got %v", product.Category)
	}
	if !product.Available {
		t.Fatal("expected availability to default to true")
	}
}

func TestNormalizeProductDocumentAvailableVariants(t *testing.T) {
	cases := []struct {
		value    interface{}
		expected bool
	}{
		{"true", true},
		{"false", false},
		{true, true},
		{false, false},
		{nil, true},
		{42, true},
	}

	for _, tc := range cases {
		raw := bson.M{"name": "Samosa", "price": 4.5, "category": []string{"snacks"}}
		if tc.value != nil {
			raw["available"] = tc.value
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			t.Fatalf("normalize failed for %v: %v", tc.value, err)
		}
		if product.Available != tc.expected {
			t.Fatalf("expected available=%v for raw %v, got %v", tc.expected, tc.value, product.Available)
		}
	}
}

func TestParsePaginationParams(t *testing.T) {
	page, limit, err := parsePaginationParams("2", "50")
	if err != nil {
		t.Fatalf("expected valid params: %v", err)
	}
	if page != 2 || limit != 50 {
		t.Fatalf("expected page=2 limit=50, got %d %d", page, limit)
	}

	if _, _, err := parsePaginationParams("0", "10"); err == nil {
		t.Fatal("expected page below 1 to be rejected")
	}
	if _, _, err := parsePaginationParams("abc", "10"); err == nil {
		t.Fatal("expected non-numeric page to be rejected")
	}

	page, limit, err = parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("expected defaults: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, limit)
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("ProductID"); got != "productID" {
		t.Fatalf("expected productID, got %q", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
