package cli

import (
	"errors"
	"fmt"
	"strconv"

	"storefront/internal/catalog"

	"github.com/spf13/cobra"
)

// 在庫が不明な行の数量上限
const maxUnknownStockQty = 99

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cartView(cmd.OutOrStdout(), a.cart)
		},
	}
	cmd.AddCommand(
		newCartAddCmd(a),
		newCartRemoveCmd(a),
		newCartUpdateCmd(a),
		newCartClearCmd(a),
	)
	return cmd
}

func newCartAddCmd(a *app) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <id|slug>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.catalog.GetProduct(cmd.Context(), args[0])
			if errors.Is(err, catalog.ErrNotFound) {
				return fmt.Errorf("product %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to load product: %w", err)
			}
			if p.Stock <= 0 {
				return fmt.Errorf("%s is out of stock", p.Name)
			}

			qty = min(max(qty, 1), p.Stock)
			if err := a.cart.AddItem(p, qty); err != nil {
				return fmt.Errorf("failed to add to cart: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Added %d x %s to cart", qty, p.Name)))
			return nil
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "Quantity")
	return cmd
}

func newCartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, ok := a.cart.Line(args[0])
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("Not in cart: "+args[0]))
				return nil
			}
			if err := a.cart.RemoveItem(line.ProductID); err != nil {
				return fmt.Errorf("failed to remove from cart: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Removed "+line.Name))
			return nil
		},
	}
}

func newCartUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <qty>",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if qty < 1 {
				return errors.New("quantity must be at least 1")
			}

			line, ok := a.cart.Line(args[0])
			if !ok {
				return fmt.Errorf("%s is not in the cart", args[0])
			}

			limit := line.Stock
			if limit <= 0 {
				limit = maxUnknownStockQty
			}
			qty = min(qty, limit)

			if err := a.cart.UpdateQuantity(line.ProductID, qty); err != nil {
				return fmt.Errorf("failed to update cart: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("%s quantity set to %d", line.Name, qty)))
			return nil
		},
	}
}

func newCartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cart.ClearCart(); err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Cart cleared"))
			return nil
		},
	}
}
