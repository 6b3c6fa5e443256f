package shop

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"swiftcart/internal/cart"
)

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// pushToast queues a transient notification and returns its expiry timer.
func (m *Model) pushToast(kind ToastKind, message string) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, Toast{ID: id, Kind: kind, Message: message})
	return m.expireToast(id)
}

// reportError logs a diagnostic and surfaces a user-visible error toast.
func (m *Model) reportError(message string, err error) tea.Cmd {
	if m.logger != nil {
		m.logger.Error(message, zap.Error(err))
	}
	return m.pushToast(ToastError, message)
}

// =============================================================================
// CART OPERATIONS
// =============================================================================
// Every mutation persists the whole cart and leaves the sidebar, badge and
// total to be rebuilt on the next View call.

// persistCart writes the cart snapshot to the local store.
func (m *Model) persistCart() tea.Cmd {
	if err := m.store.SaveCart(m.cart.Items()); err != nil {
		return m.reportError("Failed to save cart", err)
	}
	return nil
}

// addToCart looks the product up in the loaded catalog and adds it.
func (m *Model) addToCart(productID int) tea.Cmd {
	product, err := m.catalog.FindByID(productID)
	if err != nil {
		return m.reportError("Product not found", err)
	}

	m.cart.Add(product)
	cmds := []tea.Cmd{m.persistCart(), m.pushToast(ToastSuccess, "Product added to cart!")}
	return tea.Batch(cmds...)
}

// removeFromCart deletes the product from the cart. Unknown ids are a no-op
// but still report, matching the remove action being always available.
func (m *Model) removeFromCart(productID int) tea.Cmd {
	m.cart.Remove(productID)
	m.clampCartCursor()
	return tea.Batch(m.persistCart(), m.pushToast(ToastSuccess, "Product removed from cart"))
}

// changeQuantity adjusts a cart entry by delta; dropping to zero or below
// removes the entry entirely.
func (m *Model) changeQuantity(productID, delta int) tea.Cmd {
	var current int
	found := false
	for _, item := range m.cart.Items() {
		if item.ID == productID {
			current = item.Quantity
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	if current+delta <= 0 {
		return m.removeFromCart(productID)
	}

	m.cart.UpdateQuantity(productID, delta)
	return m.persistCart()
}

// =============================================================================
// CHECKOUT
// =============================================================================
// Checkout is a two-step state transition: beginCheckout enters a
// pending-confirmation state rendered inside the sidebar, confirmCheckout or
// cancelCheckout resolves it.

func (m *Model) beginCheckout() tea.Cmd {
	if m.cart.IsEmpty() {
		return m.pushToast(ToastError, "Your cart is empty!")
	}
	m.checkoutPending = true
	return nil
}

func (m *Model) confirmCheckout() tea.Cmd {
	orderID := uuid.New().String()[:8]
	count := m.cart.ItemCount()
	total := cart.FormatMoney(m.cart.Total())

	if m.logger != nil {
		m.logger.Info("order placed",
			zap.String("order_id", orderID),
			zap.Int("items", count),
			zap.String("total", total),
		)
	}

	m.cart.Clear()
	m.checkoutPending = false
	m.isCartOpen = false
	m.cartCursor = 0

	return tea.Batch(
		m.persistCart(),
		m.pushToast(ToastSuccess, fmt.Sprintf("Order %s placed successfully! Thank you for shopping with SwiftCart!", orderID)),
	)
}

func (m *Model) cancelCheckout() {
	m.checkoutPending = false
}

// clampCartCursor keeps the sidebar cursor on a valid entry after removals.
func (m *Model) clampCartCursor() {
	if m.cartCursor >= m.cart.Len() {
		m.cartCursor = m.cart.Len() - 1
	}
	if m.cartCursor < 0 {
		m.cartCursor = 0
	}
}
