// Update loop tests: window sizing, catalog messages, cart mutations, the
// checkout state machine and the stale-filter guard.

package shop

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"swiftcart/internal/catalog"
)

// =============================================================================
// INIT
// =============================================================================

func TestInit_UnreachableServiceReportsBothErrors(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	// The test client points at a closed port; both fetches fail
	// independently without cancelling each other.
	var loaded *catalogLoadedMsg
	for _, msg := range drain(t, m.Init()) {
		if got, ok := msg.(catalogLoadedMsg); ok {
			loaded = &got
		}
	}
	if loaded == nil {
		t.Fatal("Expected a catalog load result")
	}
	if loaded.productsErr == nil || loaded.categoriesErr == nil {
		t.Errorf("Expected both fetches to fail, got products=%v categories=%v",
			loaded.productsErr, loaded.categoriesErr)
	}

	newModel, _ := m.Update(*loaded)
	result := newModel.(Model)
	if len(result.toasts) != 2 {
		t.Errorf("Expected one toast per failed fetch, got %+v", result.toasts)
	}
}

// =============================================================================
// WINDOW SIZE
// =============================================================================

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	result := newModel.(Model)

	if result.width != 100 {
		t.Errorf("Expected width 100, got %d", result.width)
	}
	if result.height != 30 {
		t.Errorf("Expected height 30, got %d", result.height)
	}
}

func TestUpdate_WindowSize_ZeroIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
	result := newModel.(Model)

	if result.width != 120 {
		t.Errorf("Zero size should not clobber the window, got width %d", result.width)
	}
}

// =============================================================================
// CATALOG LOAD
// =============================================================================

func TestCatalogLoaded_PopulatesGridAndBar(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.catalog = nil
	m.displayed = nil
	m.categories = nil
	m.loadingGrid = true

	newModel, _ := m.Update(catalogLoadedMsg{
		products:   testCatalog(),
		categories: []string{"electronics", "jewelery"},
	})
	result := newModel.(Model)

	if result.loadingGrid {
		t.Error("Expected loading to finish")
	}
	if len(result.displayed) != 3 {
		t.Errorf("Expected 3 products displayed, got %d", len(result.displayed))
	}
	if len(result.categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(result.categories))
	}
}

func TestCatalogLoaded_ProductsError(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.catalog = nil
	m.displayed = nil
	m.loadingGrid = true

	newModel, _ := m.Update(catalogLoadedMsg{
		productsErr: errors.New("connection refused"),
		categories:  []string{"electronics"},
	})
	result := newModel.(Model)

	if len(result.displayed) != 0 {
		t.Error("Failed products fetch must leave the grid empty")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastError {
		t.Errorf("Expected one error toast, got %+v", result.toasts)
	}
	// Categories arrived independently.
	if len(result.categories) != 1 {
		t.Errorf("Expected categories despite product failure, got %v", result.categories)
	}
}

func TestCatalogLoaded_CategoriesError(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.categories = nil

	newModel, _ := m.Update(catalogLoadedMsg{
		products:      testCatalog(),
		categoriesErr: errors.New("boom"),
	})
	result := newModel.(Model)

	if len(result.categories) != 0 {
		t.Error("Category bar must stay unpopulated after a failed fetch")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastError {
		t.Errorf("Expected exactly one error toast, got %+v", result.toasts)
	}
	if len(result.displayed) != 3 {
		t.Error("Products must still render after a categories failure")
	}
}

// =============================================================================
// CATEGORY FILTER / STALE GUARD
// =============================================================================

func TestFiltered_AppliesLatestResponse(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.filterSeq = 1
	m.loadingGrid = true

	scoped := catalog.Catalog{testCatalog()[2]}
	newModel, _ := m.Update(filteredMsg{seq: 1, category: "jewelery", products: scoped})
	result := newModel.(Model)

	if len(result.displayed) != 1 || result.displayed[0].ID != 3 {
		t.Errorf("Expected scoped grid, got %+v", result.displayed)
	}
	if result.loadingGrid {
		t.Error("Expected loading to finish")
	}
}

func TestFiltered_StaleResponseDropped(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.filterSeq = 2 // a newer request is already in flight

	stale := catalog.Catalog{testCatalog()[0]}
	newModel, _ := m.Update(filteredMsg{seq: 1, category: "men's clothing", products: stale})
	result := newModel.(Model)

	if len(result.displayed) != 3 {
		t.Errorf("Stale response must not overwrite the grid, got %d products", len(result.displayed))
	}
}

func TestFiltered_ErrorKeepsCurrentGrid(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.filterSeq = 1
	m.loadingGrid = true

	newModel, _ := m.Update(filteredMsg{seq: 1, category: "electronics", err: errors.New("timeout")})
	result := newModel.(Model)

	if len(result.displayed) != 3 {
		t.Error("Failed filter fetch must not clear the displayed grid")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastError {
		t.Errorf("Expected one error toast, got %+v", result.toasts)
	}
}

func TestSelectCategory_AllReusesCache(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.activeCategory = "jewelery"
	m.displayed = catalog.Catalog{testCatalog()[2]}

	// "jewelery" is index 2 of [all, electronics, jewelery, ...]; two steps
	// back lands on "all".
	newModel, cmd := m.selectCategory(-2)
	result := newModel.(Model)

	if result.activeCategory != AllCategories {
		t.Fatalf("Expected active category all, got %q", result.activeCategory)
	}
	if cmd != nil {
		t.Error("Selecting all must not fetch")
	}
	if len(result.displayed) != 3 {
		t.Errorf("Expected cached full catalog, got %d products", len(result.displayed))
	}
}

func TestSelectCategory_BumpsSequence(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	result, cmd := pressKey(t, m, "tab")

	if result.activeCategory != "electronics" {
		t.Fatalf("Expected electronics, got %q", result.activeCategory)
	}
	if result.filterSeq != 1 {
		t.Errorf("Expected sequence 1, got %d", result.filterSeq)
	}
	if !result.loadingGrid {
		t.Error("Expected grid to enter loading state")
	}
	if cmd == nil {
		t.Error("Expected a filter fetch command")
	}
}

// =============================================================================
// CART MUTATIONS
// =============================================================================

func TestAddToCart_Key(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.selected = 0

	result, _ := pressKey(t, m, "a")

	if result.cart.ItemCount() != 1 {
		t.Fatalf("Expected 1 item in cart, got %d", result.cart.ItemCount())
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastSuccess {
		t.Errorf("Expected success toast, got %+v", result.toasts)
	}

	// Mutation persisted to the store.
	items, err := result.store.LoadCart()
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("Expected persisted cart with product 1, got %+v", items)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	// The grid shows a product that is no longer in the loaded catalog.
	m.displayed = catalog.Catalog{{ID: 99, Title: "Ghost", Price: 1}}
	m.selected = 0

	result, _ := pressKey(t, m, "a")

	if !result.cart.IsEmpty() {
		t.Error("Unknown product must not be added")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastError {
		t.Errorf("Expected error toast, got %+v", result.toasts)
	}
}

func TestSidebar_QuantityAndRemove(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.cart.Add(testCatalog()[0])
	m.cart.Add(testCatalog()[0])

	m.isCartOpen = true
	m.cartCursor = 0

	result, _ := pressKey(t, m, "-")
	if got := result.cart.Items()[0].Quantity; got != 1 {
		t.Fatalf("Expected quantity 1 after decrement, got %d", got)
	}

	// Decrementing past zero removes the entry entirely.
	result, _ = pressKey(t, result, "-")
	if !result.cart.IsEmpty() {
		t.Errorf("Expected empty cart, got %+v", result.cart.Items())
	}
	if result.cart.ItemCount() != 0 {
		t.Errorf("Expected badge 0, got %d", result.cart.ItemCount())
	}
}

func TestSidebar_RemoveKey(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.cart.Add(testCatalog()[0])
	m.cart.Add(testCatalog()[1])
	m.isCartOpen = true
	m.cartCursor = 1

	result, _ := pressKey(t, m, "x")

	if result.cart.Len() != 1 {
		t.Fatalf("Expected 1 entry left, got %d", result.cart.Len())
	}
	if result.cart.Items()[0].ID != 1 {
		t.Errorf("Removed the wrong entry: %+v", result.cart.Items())
	}
}

// =============================================================================
// CHECKOUT STATE MACHINE
// =============================================================================

func TestCheckout_EmptyCart(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.isCartOpen = true

	result, _ := pressKey(t, m, "enter")

	if result.checkoutPending {
		t.Error("Empty cart must not enter pending confirmation")
	}
	if !result.isCartOpen {
		t.Error("Sidebar state must be unchanged")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastError {
		t.Errorf("Expected error toast, got %+v", result.toasts)
	}
}

func TestCheckout_ConfirmClearsCart(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.cart.Add(testCatalog()[0])
	m.isCartOpen = true

	result, _ := pressKey(t, m, "enter")
	if !result.checkoutPending {
		t.Fatal("Expected pending confirmation")
	}

	result, _ = pressKey(t, result, "y")

	if !result.cart.IsEmpty() {
		t.Error("Confirmed checkout must empty the cart")
	}
	if result.isCartOpen {
		t.Error("Confirmed checkout must close the sidebar")
	}
	if result.checkoutPending {
		t.Error("Pending flag must reset")
	}

	found := false
	for _, toast := range result.toasts {
		if toast.Kind == ToastSuccess {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected success toast, got %+v", result.toasts)
	}

	items, err := result.store.LoadCart()
	if err != nil {
		t.Fatalf("LoadCart: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty persisted cart, got %+v", items)
	}
}

func TestCheckout_CancelKeepsCart(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.cart.Add(testCatalog()[0])
	m.isCartOpen = true

	result, _ := pressKey(t, m, "enter")
	result, _ = pressKey(t, result, "n")

	if result.checkoutPending {
		t.Error("Cancel must clear the pending flag")
	}
	if result.cart.ItemCount() != 1 {
		t.Error("Declined confirmation must leave the cart untouched")
	}
	if !result.isCartOpen {
		t.Error("Sidebar stays open after cancel")
	}
}

// =============================================================================
// TOASTS
// =============================================================================

func TestToastExpiry(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	cmd := m.pushToast(ToastSuccess, "hello")
	if cmd == nil {
		t.Fatal("Expected expiry timer command")
	}
	if len(m.toasts) != 1 {
		t.Fatalf("Expected one toast, got %d", len(m.toasts))
	}

	newModel, _ := m.Update(toastExpiredMsg{id: m.toasts[0].ID})
	result := newModel.(Model)

	if len(result.toasts) != 0 {
		t.Errorf("Expected toast to expire, got %+v", result.toasts)
	}
}

func TestToasts_OverlapExpireIndependently(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	_ = m.pushToast(ToastSuccess, "first")
	_ = m.pushToast(ToastError, "second")

	newModel, _ := m.Update(toastExpiredMsg{id: m.toasts[0].ID})
	result := newModel.(Model)

	if len(result.toasts) != 1 || result.toasts[0].Message != "second" {
		t.Errorf("Expected only the second toast to remain, got %+v", result.toasts)
	}
}

// =============================================================================
// DETAIL MODAL AND SUBSCRIBE OVERLAY
// =============================================================================

func TestDetail_OpenAndBuyNow(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m.selected = 2

	result, _ := pressKey(t, m, "enter")
	if result.viewMode != DetailView || result.detail == nil {
		t.Fatal("Expected detail modal to open")
	}
	if result.detail.ID != 3 {
		t.Fatalf("Expected product 3, got %d", result.detail.ID)
	}

	// Buy now adds and opens the sidebar.
	result, _ = pressKey(t, result, "b")
	if result.viewMode != StorefrontView {
		t.Error("Buy now must close the modal")
	}
	if !result.isCartOpen {
		t.Error("Buy now must open the cart sidebar")
	}
	if result.cart.ItemCount() != 1 {
		t.Errorf("Expected 1 item after buy now, got %d", result.cart.ItemCount())
	}
}

func TestSubscribe_SubmitNotifies(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	result, _ := pressKey(t, m, "s")
	if result.viewMode != SubscribeView {
		t.Fatal("Expected subscribe overlay")
	}

	result.emailInput.SetValue("ada@example.com")
	result, _ = pressKey(t, result, "enter")

	if result.viewMode != StorefrontView {
		t.Error("Submit must return to the storefront")
	}
	if len(result.toasts) != 1 || result.toasts[0].Kind != ToastSuccess {
		t.Fatalf("Expected success toast, got %+v", result.toasts)
	}
	if want := "Thank you for subscribing with ada@example.com!"; result.toasts[0].Message != want {
		t.Errorf("Expected %q, got %q", want, result.toasts[0].Message)
	}
}

func TestSubscribe_EmptyEmailNoToast(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	result, _ := pressKey(t, m, "s")
	result, _ = pressKey(t, result, "enter")

	if len(result.toasts) != 0 {
		t.Errorf("Empty submission must not notify, got %+v", result.toasts)
	}
}
