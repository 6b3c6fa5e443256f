package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swiftcart/cmd/swiftcart/shop"
	"swiftcart/cmd/swiftcart/ui"
	"swiftcart/internal/cart"
	"swiftcart/internal/catalog"
	"swiftcart/internal/config"
	"swiftcart/internal/logging"
	"swiftcart/internal/store"
)

const version = "1.0.0"

var configPath string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "swiftcart",
	Short: "SwiftCart - a terminal storefront client",
	Long: `SwiftCart is a terminal storefront client.

It fetches the product catalog and categories from a remote REST service,
renders them into an interactive terminal UI, and keeps a shopping cart
persisted locally between sessions.

Run without arguments to open the storefront.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
	SilenceUsage: true,
}

// cartCmd prints the persisted cart without launching the UI
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print the saved cart and totals",
	RunE:  showCart,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the SwiftCart version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("swiftcart %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file path")
	rootCmd.AddCommand(cartCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runStorefront() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := store.NewLocalStore(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer st.Close()

	client := catalog.NewClientWithConfig(catalog.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.APITimeout(),
	})

	logger.Info("starting storefront",
		zap.String("api", cfg.API.BaseURL),
		zap.String("db", cfg.Storage.DatabasePath),
	)

	program := tea.NewProgram(shop.New(cfg, logger, client, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("storefront exited: %w", err)
	}
	return nil
}

// showCart prints the persisted cart as a table, without touching the network.
func showCart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	st, err := store.NewLocalStore(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer st.Close()

	items, err := st.LoadCart()
	if err != nil {
		return err
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.UI.Theme))

	if len(items) == 0 {
		fmt.Println(styles.Muted.Render("Your cart is empty"))
		return nil
	}

	table := ui.NewSimpleTable("Your Cart", []string{"Qty", "Product", "Price", "Subtotal"}).
		AlignRight(2, 3)
	total := 0.0
	count := 0
	for _, item := range items {
		subtotal := item.Price * float64(item.Quantity)
		total += subtotal
		count += item.Quantity
		table.AddRow(
			fmt.Sprintf("%d", item.Quantity),
			item.Title,
			cart.FormatMoney(item.Price),
			cart.FormatMoney(subtotal),
		)
	}

	fmt.Print(table.View(styles))
	fmt.Printf("%d items · total %s\n", count, cart.FormatMoney(total))
	return nil
}
