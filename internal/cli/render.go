package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storefront/internal/cart"
	"storefront/internal/domain/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func money(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}

func price(p float64) string {
	return money(decimal.NewFromFloat(p))
}

func stockLabel(stock int) string {
	if stock <= 0 {
		return "Out of stock"
	}
	return fmt.Sprintf("%d in stock", stock)
}

func title(w io.Writer, s string) {
	fmt.Fprintln(w, titleStyle.Render(s))
}

func productTable(w io.Writer, products []model.Product) error {
	if len(products) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No products found"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category, price(p.Price), stockLabel(p.Stock))
	}
	return tw.Flush()
}

func productDetail(w io.Writer, p model.Product) {
	title(w, p.Name)
	fmt.Fprintf(w, "ID:        %s\n", p.ID)
	if p.Slug != "" {
		fmt.Fprintf(w, "Slug:      %s\n", p.Slug)
	}
	fmt.Fprintf(w, "Category:  %s\n", p.Category)
	fmt.Fprintf(w, "Price:     %s\n", price(p.Price))
	fmt.Fprintf(w, "Stock:     %s\n", stockLabel(p.Stock))
	if len(p.Images) > 0 {
		fmt.Fprintf(w, "Images:    %s\n", strings.Join(p.Images, ", "))
	}
	if p.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.Description)
	}
}

func cartView(w io.Writer, m *cart.Manager) error {
	lines := m.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Your cart is empty"))
		return nil
	}

	title(w, "Shopping Cart")
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", l.ProductID, l.Name, price(l.Price), l.Quantity, money(cart.LineTotal(l)))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nItems: %d\nTotal: %s\n", m.TotalItems(), money(m.TotalPrice()))
	return nil
}
