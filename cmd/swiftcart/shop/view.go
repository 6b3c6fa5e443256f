package shop

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
)

// cardWidth is the interior width of a product card.
const cardWidth = 30

// cartTitleLen matches the title truncation used in the cart sidebar.
const cartTitleLen = 40

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{m.renderHeader()}

	if toasts := m.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}

	var content string
	switch m.viewMode {
	case DetailView:
		content = m.renderDetail()
	case SubscribeView:
		content = m.renderSubscribe()
	default:
		content = m.renderStorefront()
	}

	if m.isCartOpen && m.viewMode == StorefrontView {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", m.renderSidebar())
	}

	sections = append(sections, content, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// =============================================================================
// HEADER / FOOTER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" SwiftCart ")

	// The badge always shows the sum of quantities, the label the running total.
	badge := m.styles.Badge.Render(fmt.Sprintf("Cart %d", m.cart.ItemCount()))
	total := m.styles.Price.Render(cart.FormatMoney(m.cart.Total()))

	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, " ", total)
}

func (m Model) renderFooter() string {
	var hints string
	switch {
	case m.viewMode == DetailView:
		hints = "a add to cart · b buy now · esc back"
	case m.viewMode == SubscribeView:
		hints = "enter subscribe · esc back"
	case m.isCartOpen && m.checkoutPending:
		hints = "y confirm · n cancel"
	case m.isCartOpen:
		hints = "↑/↓ select · +/- quantity · x remove · enter checkout · esc close"
	default:
		hints = "←→↑↓ browse · enter details · a add · tab category · c cart · s subscribe · q quit"
	}
	return m.styles.Footer.Render(hints)
}

// =============================================================================
// STOREFRONT
// =============================================================================

func (m Model) renderStorefront() string {
	var sections []string

	if bar := m.renderCategoryBar(); bar != "" {
		sections = append(sections, bar)
	}

	if trending := m.renderTrending(); trending != "" {
		sections = append(sections, trending)
	}

	sections = append(sections, m.renderGrid())

	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderCategoryBar renders the filter buttons. A failed categories fetch
// leaves the bar absent entirely.
func (m Model) renderCategoryBar() string {
	if len(m.categories) == 0 {
		return ""
	}

	options := append([]string{AllCategories}, m.categories...)
	buttons := make([]string, 0, len(options))
	for _, c := range options {
		label := CapitalizeWords(c)
		if c == m.activeCategory {
			buttons = append(buttons, m.styles.CategoryButtonActive.Render(label))
		} else {
			buttons = append(buttons, m.styles.CategoryButton.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

// renderTrending renders the top products by rating as a horizontal strip.
func (m Model) renderTrending() string {
	count := m.cfg.UI.TrendingCount
	if count <= 0 || len(m.catalog) == 0 {
		return ""
	}

	cards := make([]string, 0, count)
	for _, p := range m.catalog.Trending(count) {
		cards = append(cards, m.renderCard(p, m.styles.TrendingCard))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Trending Now"),
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (m Model) renderGrid() string {
	if m.loadingGrid {
		return m.styles.Muted.Render(m.spinner.View() + " Loading products...")
	}

	if len(m.displayed) == 0 {
		return m.styles.Muted.Render("No products found")
	}

	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(m.displayed); start += cols {
		end := start + cols
		if end > len(m.displayed) {
			end = len(m.displayed)
		}

		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			style := m.styles.Card
			if i == m.selected {
				style = m.styles.CardSelected
			}
			cards = append(cards, m.renderCard(m.displayed[i], style))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders one product card: category, rating, title, price.
func (m Model) renderCard(p catalog.Product, style lipgloss.Style) string {
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.CategoryLabel.Render(truncate(CapitalizeWords(p.Category), cardWidth-12)),
		m.styles.Muted.Render(" "),
		m.styles.Stars.Render(fmt.Sprintf("★ %.1f", p.Rating.Rate)),
		m.styles.Muted.Render(fmt.Sprintf(" (%d)", p.Rating.Count)),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.styles.Body.Width(cardWidth).Render(truncate(p.Title, cardWidth*2)),
		m.styles.Price.Render(cart.FormatMoney(p.Price)),
	)

	return style.Width(cardWidth + 2).Render(body)
}

// RenderStars produces the fixed five-slot star visualization: one full star
// per integer point, a half star when the fractional remainder is >= 0.5,
// empty stars for the rest.
func RenderStars(rate float64) string {
	fullStars := int(rate)
	hasHalfStar := rate-float64(fullStars) >= 0.5

	var sb strings.Builder
	for i := 0; i < 5; i++ {
		switch {
		case i < fullStars:
			sb.WriteRune('★')
		case i == fullStars && hasHalfStar:
			sb.WriteRune('⯪')
		default:
			sb.WriteRune('☆')
		}
	}
	return sb.String()
}

// =============================================================================
// CART SIDEBAR
// =============================================================================

func (m Model) renderSidebar() string {
	title := m.styles.SidebarTitle.Render(fmt.Sprintf("Your Cart (%d)", m.cart.ItemCount()))

	if m.cart.IsEmpty() {
		body := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			m.styles.Bold.Render("Your cart is empty"),
			m.styles.Muted.Render("Add some products to get started!"),
		)
		return m.styles.Sidebar.Render(body)
	}

	lines := []string{title, ""}
	for i, item := range m.cart.Items() {
		cursor := "  "
		titleStyle := m.styles.Body
		if i == m.cartCursor {
			cursor = m.styles.Bold.Render("> ")
			titleStyle = m.styles.Bold
		}
		lines = append(lines,
			cursor+titleStyle.Render(truncate(item.Title, cartTitleLen)),
			"  "+m.styles.Price.Render(cart.FormatMoney(item.Price))+
				m.styles.Muted.Render(fmt.Sprintf("  × %d", item.Quantity)),
		)
	}

	lines = append(lines,
		"",
		m.styles.RenderDivider(cartTitleLen),
		m.styles.Bold.Render("Total: ")+m.styles.Price.Render(cart.FormatMoney(m.cart.Total())),
	)

	if m.checkoutPending {
		lines = append(lines,
			"",
			m.styles.Warning.Render(fmt.Sprintf("Checkout %d items for %s?",
				m.cart.ItemCount(), cart.FormatMoney(m.cart.Total()))),
			m.styles.Muted.Render("y confirm · n cancel"),
		)
	}

	return m.styles.Sidebar.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// =============================================================================
// DETAIL MODAL
// =============================================================================

func (m Model) renderDetail() string {
	if m.detail == nil {
		return ""
	}
	p := *m.detail

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Badge.Render(CapitalizeWords(p.Category)),
		"  ",
		m.styles.Stars.Render(RenderStars(p.Rating.Rate)),
		m.styles.Muted.Render(fmt.Sprintf(" (%d reviews)", p.Rating.Count)),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(p.Title),
		header,
		"",
		m.safeRenderDescription(p.Description),
		m.styles.Muted.Render(p.Image),
		"",
		m.styles.Price.Render(cart.FormatMoney(p.Price)),
		"",
		m.styles.Success.Render("a")+m.styles.Body.Render(" Add to Cart   ")+
			m.styles.Success.Render("b")+m.styles.Body.Render(" Buy Now"),
	)

	return m.styles.Content.Render(m.styles.Modal.Render(body))
}

// safeRenderDescription renders the description through glamour with panic
// recovery, falling back to plain text.
func (m Model) safeRenderDescription(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = m.styles.Body.Render(content)
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return m.styles.Body.Render(content)
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) renderSubscribe() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Join our newsletter"),
		m.styles.Muted.Render("Get the latest deals straight to your inbox."),
		"",
		m.emailInput.View(),
	)
	return m.styles.Content.Render(m.styles.Modal.Render(body))
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(m.toasts))
	for _, toast := range m.toasts {
		style := m.styles.ToastSuccess
		if toast.Kind == ToastError {
			style = m.styles.ToastError
		}
		rendered = append(rendered, style.Render(toast.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
