// Package cart holds the session cart ledger and the cart calculation
// service that prices it.
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/Sahil6458/MapleEats/internal/models"
	"github.com/Sahil6458/MapleEats/internal/pricing"
)

// Ledger owns the cart lines for one session. It lives only for the session's
// duration and is never persisted. Every add creates a new line, even for a
// product+customization combination already in the cart; per-line quantity
// edits are the merge mechanism the UI exposes.
type Ledger struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// AddItem appends a new line. The unit price is resolved from the product's
// base price and the customization selections against the option catalog;
// without customization the base price is used directly.
func (l *Ledger) AddItem(product models.Product, quantity int, customization *models.ProductCustomization, catalog []models.CustomizationOption) models.CartItem {
	unitPrice := product.Price
	if customization != nil {
		unitPrice = pricing.ResolveUnitPrice(product.Price, *customization, catalog)
	}

	item := models.CartItem{
		ID:            fmt.Sprintf("%s_%d", product.ID.Hex(), time.Now().UnixNano()),
		ProductID:     product.ID.Hex(),
		Name:          product.Name,
		Price:         unitPrice,
		Quantity:      quantity,
		Customization: customization,
		TotalPrice:    unitPrice * float64(quantity),
	}

	l.mu.Lock()
	l.items = append(l.items, item)
	l.mu.Unlock()

	return item
}

// UpdateQuantity replaces a line's quantity and recomputes its total.
// Quantities below 1 are refused; routing a decrement-to-zero through
// RemoveItem is the caller's job.
func (l *Ledger) UpdateQuantity(itemID string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items[i].Quantity = quantity
			l.items[i].TotalPrice = l.items[i].Price * float64(quantity)
			return true
		}
	}
	return false
}

// RemoveItem deletes a line. Unknown ids are a no-op.
func (l *Ledger) RemoveItem(itemID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the ledger. Called after successful order placement.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
}

// Items returns a snapshot copy of the current lines.
func (l *Ledger) Items() []models.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]models.CartItem, len(l.items))
	copy(snapshot, l.items)
	return snapshot
}

// TotalItems is the sum of line quantities.
func (l *Ledger) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, item := range l.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of line totals.
func (l *Ledger) Subtotal() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	subtotal := 0.0
	for _, item := range l.items {
		subtotal += item.TotalPrice
	}
	return subtotal
}
