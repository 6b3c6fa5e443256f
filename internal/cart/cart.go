// Package cart implements the client-side shopping cart: an ordered list of
// products with quantities, unique by product id. The cart itself performs no
// I/O; persistence and rendering react to its mutations.
package cart

import (
	"fmt"

	"swiftcart/internal/catalog"
)

// Item is a product in the cart together with its quantity.
// The product fields are embedded so the serialized form stays flat,
// matching the slot payload written by earlier releases.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered sequence of items, unique by product id.
// Quantities are always >= 1 while an item is present.
type Cart struct {
	items []Item
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts the product with quantity 1, or increments the quantity if the
// product is already in the cart.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{Product: p, Quantity: 1})
}

// Remove deletes the item with the given product id. Removing an id that is
// not in the cart is a no-op.
func (c *Cart) Remove(productID int) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// UpdateQuantity adds delta (signed) to the item's quantity. A resulting
// quantity <= 0 removes the item entirely. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(productID, delta int) {
	for i := range c.items {
		if c.items[i].ID != productID {
			continue
		}
		c.items[i].Quantity += delta
		if c.items[i].Quantity <= 0 {
			c.Remove(productID)
		}
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Contains reports whether the product id is in the cart.
func (c *Cart) Contains(productID int) bool {
	for _, item := range c.items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Restore replaces the cart contents with a previously serialized snapshot.
// Entries that violate the cart invariants (quantity < 1, duplicate ids) are
// dropped rather than failing the whole restore.
func (c *Cart) Restore(items []Item) {
	c.items = nil
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if item.Quantity < 1 || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		c.items = append(c.items, item)
	}
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// ItemCount returns the sum of all quantities (the badge value).
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Total returns the sum of price times quantity over all items.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// FormatMoney renders an amount the way the storefront displays prices.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
