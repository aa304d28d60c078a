package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/ironstore/internal/model"
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"p"},
	Short:   "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products",
	RunE:    runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a product",
	Long: `Add a product to the catalog.

Examples:
  ironstore products add "Widget" --price 9.99
  ironstore products add "Gadget" --price 24.50 --out-of-stock -d "A useful gadget"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProductsAdd,
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsUpdate,
}

var productsRmCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"delete"},
	Short:   "Delete a product",
	Args:    cobra.ExactArgs(1),
	RunE:    runProductsRm,
}

var (
	addPrice       float64
	addOutOfStock  bool
	addDescription string
)

func init() {
	productsAddCmd.Flags().Float64VarP(&addPrice, "price", "p", 0, "Price (required)")
	productsAddCmd.Flags().BoolVar(&addOutOfStock, "out-of-stock", false, "Mark as out of stock")
	productsAddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	productsAddCmd.MarkFlagRequired("price")

	productsUpdateCmd.Flags().String("title", "", "New title")
	productsUpdateCmd.Flags().Float64("price", 0, "New price")
	productsUpdateCmd.Flags().Bool("in-stock", false, "In-stock flag")
	productsUpdateCmd.Flags().String("description", "", "New description")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsRmCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	products, err := api.Products()
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Println("Catalog is empty. Add a product with: ironstore products add \"Title\" --price 1.00")
		return nil
	}

	fmt.Printf("\n%d product(s)\n", len(products))
	fmt.Println(strings.Repeat("─", 72))
	for _, p := range products {
		printProduct(p)
	}
	fmt.Println()
	return nil
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	p, err := api.Product(args[0])
	if err != nil {
		return err
	}

	printProduct(*p)
	if p.Description != "" {
		fmt.Printf("    %s\n", p.Description)
	}
	return nil
}

func runProductsAdd(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	title := strings.Join(args, " ")

	p, err := api.CreateProduct(title, addPrice, !addOutOfStock, addDescription)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: \"%s\" at %.2f\n", p.ID, p.Title, p.Price)
	return nil
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	patch := &model.ProductPatch{}
	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		patch.Title = &v
	}
	if cmd.Flags().Changed("price") {
		v, _ := cmd.Flags().GetFloat64("price")
		patch.Price = &v
	}
	if cmd.Flags().Changed("in-stock") {
		v, _ := cmd.Flags().GetBool("in-stock")
		patch.InStock = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		patch.Description = &v
	}

	if patch.Empty() {
		return fmt.Errorf("nothing to update; pass at least one of --title, --price, --in-stock, --description")
	}

	p, err := api.UpdateProduct(args[0], patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s\n", p.ID)
	printProduct(*p)
	return nil
}

func runProductsRm(cmd *cobra.Command, args []string) error {
	api, err := newClient()
	if err != nil {
		return err
	}

	if err := api.DeleteProduct(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func printProduct(p model.Product) {
	stock := "in stock"
	if !p.InStock {
		stock = "out of stock"
	}

	title := p.Title
	if len(title) > 36 {
		title = title[:33] + "..."
	}

	fmt.Printf("  %-28s  %-36s  %8.2f  %s\n", p.ID, title, p.Price, stock)
}
