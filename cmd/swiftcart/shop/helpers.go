package shop

import (
	"strings"
	"unicode"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
)

// CapitalizeWords upper-cases the first letter of each space-separated token.
// Used for category labels ("men's clothing" -> "Men's Clothing").
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// clamp bounds v into [lo, hi]. A hi below lo collapses to lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// selectedProduct returns the product under the grid cursor.
func (m Model) selectedProduct() (catalog.Product, bool) {
	if m.selected < 0 || m.selected >= len(m.displayed) {
		return catalog.Product{}, false
	}
	return m.displayed[m.selected], true
}

// cursorItem returns the cart entry under the sidebar cursor.
func (m Model) cursorItem() (cart.Item, bool) {
	items := m.cart.Items()
	if m.cartCursor < 0 || m.cartCursor >= len(items) {
		return cart.Item{}, false
	}
	return items[m.cartCursor], true
}

// gridColumns computes how many product cards fit across the current width.
func (m Model) gridColumns() int {
	if m.width <= 0 {
		return 1
	}
	cols := m.width / (cardWidth + 2)
	if cols < 1 {
		cols = 1
	}
	if cols > 4 {
		cols = 4
	}
	return cols
}
