package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Name:        "  Nike Air Max 90 ",
		Description: "Classic running shoes with visible Air cushioning.",
		Price:       129.99,
		Images:      []string{" https://picsum.photos/800/600?random=7 ", ""},
		Category:    " Fashion ",
		Stock:       45,
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "levi-s-501-original-jeans", Slugify("Levi's 501 Original Jeans"))
	assert.Equal(t, "instant-pot-duo-7-in-1", Slugify("  Instant Pot Duo 7-in-1 "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestProduct_Normalize(t *testing.T) {
	p := validProduct()
	p.Normalize()

	assert.Equal(t, "Nike Air Max 90", p.Name)
	assert.Equal(t, "nike-air-max-90", p.Slug)
	assert.Equal(t, "Fashion", p.Category)
	assert.Equal(t, []string{"https://picsum.photos/800/600?random=7"}, p.Images)
	assert.Equal(t, "Classic running shoes with visible Air cushioning....", p.ShortDescription)
	assert.NoError(t, p.Validate())
}

func TestProduct_NormalizeKeepsExplicitSlug(t *testing.T) {
	p := validProduct()
	p.Slug = " Custom-Slug "
	p.ShortDescription = "short"
	p.Normalize()

	assert.Equal(t, "custom-slug", p.Slug)
	assert.Equal(t, "short", p.ShortDescription)
}

func TestProduct_NormalizeTruncatesShortDescription(t *testing.T) {
	p := validProduct()
	p.Description = strings.Repeat("é", 300)
	p.Normalize()

	assert.Equal(t, strings.Repeat("é", 150)+"...", p.ShortDescription)
	assert.NoError(t, p.Validate())
}

func TestProduct_Validate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Product)
		msg    string
	}{
		"name":        {func(p *Product) { p.Name = "" }, "Product name is required"},
		"long name":   {func(p *Product) { p.Name = strings.Repeat("a", 201) }, "Product name cannot exceed 200 characters"},
		"slug":        {func(p *Product) { p.Slug = "" }, "Product slug is required"},
		"description": {func(p *Product) { p.Description = "" }, "Product description is required"},
		"short":       {func(p *Product) { p.ShortDescription = strings.Repeat("a", 201) }, "Short description cannot exceed 200 characters"},
		"price":       {func(p *Product) { p.Price = -0.01 }, "Price cannot be negative"},
		"images":      {func(p *Product) { p.Images = nil }, "At least one image is required"},
		"category":    {func(p *Product) { p.Category = "" }, "Product category is required"},
		"stock":       {func(p *Product) { p.Stock = -1 }, "Stock cannot be negative"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			p.Normalize()
			tc.mutate(&p)
			assert.EqualError(t, p.Validate(), tc.msg)
		})
	}
}

func TestCartLine_Image(t *testing.T) {
	assert.Equal(t, "", CartLine{}.Image())
	assert.Equal(t, "a", CartLine{Images: []string{"a", "b"}}.Image())
}
