package shop

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Height > 0 {
			m.width = msg.Width
			m.height = msg.Height
			m.ready = true
		}
		return m, nil

	case spinner.TickMsg:
		if m.loadingGrid {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)

	case filteredMsg:
		return m.handleFiltered(msg)

	case toastExpiredMsg:
		kept := m.toasts[:0]
		for _, toast := range m.toasts {
			if toast.ID != msg.id {
				kept = append(kept, toast)
			}
		}
		m.toasts = kept
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.viewMode == SubscribeView {
		var cmd tea.Cmd
		m.emailInput, cmd = m.emailInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// =============================================================================
// CATALOG MESSAGES
// =============================================================================

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingGrid = false
	m.catalogLoaded = true

	var cmds []tea.Cmd

	if msg.productsErr != nil {
		cmds = append(cmds, m.reportError("Failed to load products", msg.productsErr))
	} else {
		m.catalog = msg.products
		if m.activeCategory == AllCategories {
			m.displayed = msg.products
		}
	}

	if msg.categoriesErr != nil {
		// The category bar stays unpopulated; the grid is unaffected.
		cmds = append(cmds, m.reportError("Failed to load categories", msg.categoriesErr))
	} else {
		m.categories = msg.categories
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleFiltered(msg filteredMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.filterSeq {
		// A newer selection superseded this fetch; never let the stale
		// response overwrite the grid.
		if m.logger != nil {
			m.logger.Debug("dropping stale filter response",
				zap.Int("seq", msg.seq),
				zap.Int("latest", m.filterSeq),
				zap.String("category", msg.category),
			)
		}
		return m, nil
	}

	m.loadingGrid = false

	if msg.err != nil {
		// Keep whatever the grid currently shows.
		return m, m.reportError("Failed to filter products", msg.err)
	}

	m.displayed = msg.products
	m.selected = 0
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.viewMode {
	case SubscribeView:
		return m.handleSubscribeKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	default:
		if m.isCartOpen {
			return m.handleSidebarKey(msg)
		}
		return m.handleStorefrontKey(msg)
	}
}

func (m Model) handleStorefrontKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "c":
		m.isCartOpen = true
		m.cartCursor = 0
		return m, nil

	case "s":
		m.viewMode = SubscribeView
		m.emailInput.SetValue("")
		return m, m.emailInput.Focus()

	case "tab":
		return m.selectCategory(1)
	case "shift+tab":
		return m.selectCategory(-1)

	case "left", "h":
		m.selected = clamp(m.selected-1, 0, len(m.displayed)-1)
	case "right", "l":
		m.selected = clamp(m.selected+1, 0, len(m.displayed)-1)
	case "up", "k":
		m.selected = clamp(m.selected-m.gridColumns(), 0, len(m.displayed)-1)
	case "down", "j":
		m.selected = clamp(m.selected+m.gridColumns(), 0, len(m.displayed)-1)

	case "enter":
		if p, ok := m.selectedProduct(); ok {
			m.detail = &p
			m.viewMode = DetailView
		}
	case "a":
		if p, ok := m.selectedProduct(); ok {
			return m, m.addToCart(p.ID)
		}
	}
	return m, nil
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.checkoutPending {
		switch msg.String() {
		case "y", "enter":
			return m, m.confirmCheckout()
		case "n", "esc":
			m.cancelCheckout()
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "c", "esc":
		m.isCartOpen = false
		return m, nil

	case "up", "k":
		m.cartCursor = clamp(m.cartCursor-1, 0, m.cart.Len()-1)
	case "down", "j":
		m.cartCursor = clamp(m.cartCursor+1, 0, m.cart.Len()-1)

	case "+", "=":
		if item, ok := m.cursorItem(); ok {
			return m, m.changeQuantity(item.ID, 1)
		}
	case "-":
		if item, ok := m.cursorItem(); ok {
			return m, m.changeQuantity(item.ID, -1)
		}
	case "x", "d":
		if item, ok := m.cursorItem(); ok {
			return m, m.removeFromCart(item.ID)
		}

	case "enter":
		return m, m.beginCheckout()
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		if m.detail != nil {
			id := m.detail.ID
			m.detail = nil
			m.viewMode = StorefrontView
			return m, m.addToCart(id)
		}
	case "b":
		// Buy now: add to cart, close the modal, open the sidebar.
		if m.detail != nil {
			id := m.detail.ID
			m.detail = nil
			m.viewMode = StorefrontView
			m.isCartOpen = true
			m.cartCursor = 0
			return m, m.addToCart(id)
		}
	case "esc", "q":
		m.detail = nil
		m.viewMode = StorefrontView
	}
	return m, nil
}

func (m Model) handleSubscribeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = StorefrontView
		m.emailInput.Blur()
		return m, nil

	case tea.KeyEnter:
		email := m.emailInput.Value()
		m.viewMode = StorefrontView
		m.emailInput.Blur()
		if email == "" {
			return m, nil
		}
		// The newsletter form only notifies; there is no network call.
		return m, m.pushToast(ToastSuccess, fmt.Sprintf("Thank you for subscribing with %s!", email))
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

// =============================================================================
// CATEGORY FILTER
// =============================================================================

// selectCategory moves the active category by delta through
// ["all", categories...]. Selecting "all" reuses the cached full catalog;
// anything else issues a server-side filter fetch guarded by a fresh
// sequence number.
func (m Model) selectCategory(delta int) (tea.Model, tea.Cmd) {
	if len(m.categories) == 0 {
		return m, nil
	}

	options := append([]string{AllCategories}, m.categories...)
	current := 0
	for i, c := range options {
		if c == m.activeCategory {
			current = i
			break
		}
	}

	next := (current + delta + len(options)) % len(options)
	m.activeCategory = options[next]
	m.selected = 0

	if m.activeCategory == AllCategories {
		m.displayed = m.catalog
		m.loadingGrid = false
		return m, nil
	}

	m.filterSeq++
	m.loadingGrid = true
	return m, tea.Batch(m.spinner.Tick, m.filterByCategory(m.filterSeq, m.activeCategory))
}
