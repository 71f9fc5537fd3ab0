package cli

import (
	"errors"
	"fmt"

	"storefront/internal/catalog"

	"github.com/spf13/cobra"
)

const topDealsCount = 6

func newHomeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show top deals and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := a.catalog.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}

			w := cmd.OutOrStdout()
			title(w, "Top Deals")
			if err := productTable(w, catalog.TopDeals(products, topDealsCount)); err != nil {
				return err
			}

			fmt.Fprintln(w)
			title(w, "Shop by Category")
			for _, c := range catalog.Categories(products) {
				fmt.Fprintf(w, "  %s %s\n", c.Name, mutedStyle.Render(fmt.Sprintf("(%d)", c.Count)))
			}
			return nil
		},
	}
}

func newProductsCmd(a *app) *cobra.Command {
	var p catalog.ListParams

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.catalog.ListProducts(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}

			w := cmd.OutOrStdout()
			if err := productTable(w, res.Products); err != nil {
				return err
			}
			fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Page %d of %d (%d products)", res.Page, res.Pages, res.Total)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&p.Search, "search", "s", "", "Full-text search")
	cmd.Flags().IntVar(&p.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&p.Limit, "limit", 20, "Products per page (max 100)")
	return cmd
}

func newCategoryCmd(a *app) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "category <name>",
		Short: "List products in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, ok := catalog.ParseSortKey(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort %q (use default, price-low, price-high or name)", sortBy)
			}

			products, err := a.catalog.ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load products: %w", err)
			}
			products = catalog.SortProducts(catalog.FilterByCategory(products, args[0]), key)

			w := cmd.OutOrStdout()
			title(w, args[0])
			return productTable(w, products)
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", string(catalog.SortDefault), "default, price-low, price-high or name")
	return cmd
}

func newProductCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id|slug>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.GetProduct(cmd.Context(), args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("product %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to load product: %w", err)
			}

			productDetail(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
