package shop

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"swiftcart/internal/catalog"
)

// =============================================================================
// MESSAGES
// =============================================================================

// catalogLoadedMsg carries the results of the initial paired fetch. The two
// fetches succeed or fail independently; either error may be set.
type catalogLoadedMsg struct {
	products      catalog.Catalog
	categories    []string
	productsErr   error
	categoriesErr error
}

// filteredMsg carries a category-scoped product list. seq is the request
// sequence number; responses older than the latest request are discarded.
type filteredMsg struct {
	seq      int
	category string
	products catalog.Catalog
	err      error
}

// toastExpiredMsg retires one toast by id.
type toastExpiredMsg struct {
	id int
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadCatalog fetches the category list and the full product list
// concurrently. Neither failure cancels the other fetch: a dead categories
// endpoint must not take the product grid down with it.
func (m Model) loadCatalog() tea.Cmd {
	client := m.client
	timeout := m.cfg.APITimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var msg catalogLoadedMsg
		g := new(errgroup.Group)
		g.Go(func() error {
			msg.products, msg.productsErr = client.Products(ctx)
			return nil
		})
		g.Go(func() error {
			msg.categories, msg.categoriesErr = client.Categories(ctx)
			return nil
		})
		_ = g.Wait()

		return msg
	}
}

// filterByCategory fetches the server-side filtered list for one category.
// The caller bumps the sequence number before issuing the command.
func (m Model) filterByCategory(seq int, category string) tea.Cmd {
	client := m.client
	timeout := m.cfg.APITimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		products, err := client.ProductsByCategory(ctx, category)
		return filteredMsg{seq: seq, category: category, products: products, err: err}
	}
}

// expireToast retires the given toast after the configured lifetime.
func (m Model) expireToast(id int) tea.Cmd {
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
