package catalog

import (
	"sort"
	"strings"

	"storefront/internal/domain/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortDefault   SortKey = "default"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "", SortDefault:
		return SortDefault, true
	case SortPriceLow, SortPriceHigh, SortName:
		return k, true
	}
	return SortDefault, false
}

// FilterByCategory は大文字小文字を無視して完全一致で絞る。
func FilterByCategory(products []model.Product, category string) []model.Product {
	category = strings.TrimSpace(category)
	out := []model.Product{}
	for _, p := range products {
		if p.Category != "" && strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts は並べ替えたコピーを返す（元のスライスは変えない）。
func SortProducts(products []model.Product, key SortKey) []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		col := collate.New(language.English, collate.Loose)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// TopDeals は安い順にn件
func TopDeals(products []model.Product, n int) []model.Product {
	sorted := SortProducts(products, SortPriceLow)
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

type CategoryCount struct {
	Name  string
	Count int
}

// Categories は出現順にカテゴリと件数を返す。
func Categories(products []model.Product) []CategoryCount {
	var out []CategoryCount
	index := map[string]int{}
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		key := strings.ToLower(p.Category)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, CategoryCount{Name: p.Category, Count: 1})
	}
	return out
}
