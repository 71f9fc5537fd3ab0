package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 実DBを使うテストは STOREFRONT_INTEGRATION=1 のときだけ動かす。
func requireIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() || os.Getenv("STOREFRONT_INTEGRATION") == "" {
		t.Skip("set STOREFRONT_INTEGRATION=1 to run database tests")
	}
}

func normalized(products []model.Product) []model.Product {
	for i := range products {
		products[i].Normalize()
	}
	return products
}

// mongo / postgres の両方で同じ振る舞いを確認する。
func runProductRepositoryContract(t *testing.T, r repo.ProductRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := r.ReplaceAll(ctx, normalized(seed.Products()))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	t.Run("list paginates", func(t *testing.T) {
		page1, total, err := r.List(ctx, repo.ProductListQuery{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
		assert.Len(t, page1, 5)

		page2, total, err := r.List(ctx, repo.ProductListQuery{Page: 2, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(8), total)
		assert.Len(t, page2, 3)

		seen := map[string]bool{}
		for _, p := range append(page1, page2...) {
			assert.False(t, seen[p.ID], "duplicate across pages: %s", p.ID)
			seen[p.ID] = true
		}
	})

	t.Run("search", func(t *testing.T) {
		items, total, err := r.List(ctx, repo.ProductListQuery{Page: 1, Limit: 20, Search: "headphones"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "sony-wh-1000xm5", items[0].Slug)
	})

	t.Run("find by id and slug", func(t *testing.T) {
		bySlug, err := r.FindBySlug(ctx, "IPHONE-15-PRO")
		require.NoError(t, err)
		assert.Equal(t, "iPhone 15 Pro", bySlug.Name)
		assert.Equal(t, []string{"https://picsum.photos/800/600?random=3", "https://picsum.photos/800/600?random=4"}, bySlug.Images)

		byID, err := r.FindByID(ctx, bySlug.ID)
		require.NoError(t, err)
		assert.Equal(t, bySlug.Slug, byID.Slug)

		_, err = r.FindByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, repo.ErrNotFound)

		_, err = r.FindBySlug(ctx, "missing")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	t.Run("create and duplicate slug", func(t *testing.T) {
		p := model.Product{
			Name:        "Desk Lamp",
			Description: "LED desk lamp",
			Price:       39.5,
			Images:      []string{"https://picsum.photos/800/600?random=20"},
			Category:    "Home & Kitchen",
			Stock:       3,
		}
		p.Normalize()

		created, err := r.Create(ctx, p)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())

		_, err = r.Create(ctx, p)
		assert.ErrorIs(t, err, repo.ErrDuplicate)

		// 新しい順なので先頭に来る
		items, total, err := r.List(ctx, repo.ProductListQuery{Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(9), total)
		require.Len(t, items, 1)
		assert.Equal(t, created.ID, items[0].ID)
	})

	t.Run("replace all", func(t *testing.T) {
		n, err := r.ReplaceAll(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		_, total, err := r.List(ctx, repo.ProductListQuery{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}
