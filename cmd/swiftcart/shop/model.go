// Package shop provides the interactive TUI storefront for SwiftCart.
// The storefront is split across multiple files for maintainability:
//   - model.go: Types, construction, Init (this file)
//   - model_update.go: Update loop and key handling
//   - commands.go: Async catalog fetches and toast timers
//   - cart_ops.go: Cart mutations with persistence and notifications
//   - view.go: Rendering functions
//   - helpers.go: Utility functions
package shop

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"swiftcart/cmd/swiftcart/ui"
	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
	"swiftcart/internal/config"
	"swiftcart/internal/store"
)

// AllCategories is the category filter value showing the whole catalog.
const AllCategories = "all"

// ViewMode determines which surface is focused/active.
type ViewMode int

const (
	StorefrontView ViewMode = iota // Grid, trending strip, category bar
	DetailView                     // Product detail modal
	SubscribeView                  // Newsletter signup overlay
)

// ToastKind classifies a notification.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is a transient notification. Overlapping toasts coexist and expire
// independently via their own timer messages.
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// Model is the main model for the interactive storefront.
type Model struct {
	// Dependencies
	cfg    *config.Config
	logger *zap.Logger
	client *catalog.Client
	store  *store.LocalStore

	// UI components
	styles     ui.Styles
	spinner    spinner.Model
	emailInput textinput.Model
	renderer   *glamour.TermRenderer

	// Window
	width  int
	height int
	ready  bool

	// Catalog state
	catalog        catalog.Catalog // full list, cached for the "all" filter
	displayed      catalog.Catalog // current grid contents
	categories     []string
	activeCategory string
	loadingGrid    bool
	catalogLoaded  bool

	// Stale-response guard: only the response matching the latest filter
	// request sequence may touch the grid.
	filterSeq int

	// Cart state
	cart            *cart.Cart
	isCartOpen      bool
	checkoutPending bool
	cartCursor      int

	// Grid selection
	selected int

	// Detail modal
	detail *catalog.Product

	// Notifications
	toasts      []Toast
	nextToastID int
	toastTTL    time.Duration

	viewMode ViewMode
}

// New constructs the storefront model. The cart is restored from the local
// store; a missing or unreadable snapshot starts empty.
func New(cfg *config.Config, logger *zap.Logger, client *catalog.Client, st *store.LocalStore) Model {
	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 40

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)

	c := cart.New()
	if items, err := st.LoadCart(); err != nil {
		logger.Warn("failed to restore cart", zap.Error(err))
	} else {
		c.Restore(items)
	}

	return Model{
		cfg:            cfg,
		logger:         logger,
		client:         client,
		store:          st,
		styles:         styles,
		spinner:        sp,
		emailInput:     email,
		renderer:       renderer,
		cart:           c,
		activeCategory: AllCategories,
		loadingGrid:    true,
		toastTTL:       cfg.ToastDuration(),
		viewMode:       StorefrontView,
	}
}

// Init kicks off the initial catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadCatalog(),
	)
}
