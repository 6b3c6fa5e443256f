// Test utilities: a fully wired model backed by a throwaway store, with a
// small seeded catalog.

package shop

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"swiftcart/cmd/swiftcart/ui"
	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
	"swiftcart/internal/config"
	"swiftcart/internal/store"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		{ID: 1, Title: "Fjallraven Backpack", Price: 109.95, Description: "Fits 15 inch laptops", Category: "men's clothing", Rating: catalog.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Mens Casual T-Shirt", Price: 22.3, Description: "Slim fit", Category: "men's clothing", Rating: catalog.Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "Gold Chain Bracelet", Price: 695, Description: "Dragon station chain", Category: "jewelery", Rating: catalog.Rating{Rate: 4.6, Count: 400}},
	}
}

// newTestModel builds a model with safe defaults, a temp-dir store and a
// seeded catalog. The HTTP client points at a closed port so an accidental
// fetch fails fast instead of hitting the network.
func newTestModel(t *testing.T) Model {
	t.Helper()

	st, err := store.NewLocalStore(filepath.Join(t.TempDir(), "swiftcart.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = "http://127.0.0.1:1"
	cfg.API.Timeout = "100ms"

	styles := ui.NewStyles(ui.LightTheme())
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	email := textinput.New()
	email.Placeholder = "you@example.com"

	m := Model{
		cfg:            cfg,
		logger:         zap.NewNop(),
		client:         catalog.NewClientWithConfig(catalog.ClientConfig{BaseURL: cfg.API.BaseURL, Timeout: 100 * time.Millisecond}),
		store:          st,
		styles:         styles,
		spinner:        sp,
		emailInput:     email,
		cart:           cart.New(),
		activeCategory: AllCategories,
		catalogLoaded:  true,
		// Keep timers instant so draining commands never stalls a test.
		toastTTL: time.Millisecond,
		viewMode: StorefrontView,
		ready:    true,
		width:    120,
		height:   40,
	}

	m.catalog = testCatalog()
	m.displayed = m.catalog
	m.categories = []string{"electronics", "jewelery", "men's clothing", "women's clothing"}
	return m
}

// pressKey runs one key through the update loop and returns the new model.
func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()

	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}

	newModel, cmd := m.Update(msg)
	return newModel.(Model), cmd
}

// drain executes a command tree synchronously so mutations that ride on
// returned commands (toast timers excluded) are observable in tests.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}

	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, sub := range batch {
			msgs = append(msgs, drain(t, sub)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}
