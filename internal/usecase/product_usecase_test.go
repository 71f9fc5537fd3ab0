package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) ReplaceAll(ctx context.Context, products []model.Product) (int, error) {
	args := m.Called(ctx, products)
	return args.Int(0), args.Error(1)
}

func assertHTTPError(t *testing.T, err error, status int, contains string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	assert.Contains(t, he.Message, contains)
}

// =====================
// List
// =====================

func TestProductUsecase_ListProducts_Defaults(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("List", mock.Anything, repo.ProductListQuery{Page: 1, Limit: 20}).Return([]model.Product(nil), int64(0), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 20, out.Limit)
	assert.Equal(t, 0, out.Pages)
	assert.NotNil(t, out.Items)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), nil)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: -1})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid page")
}

func TestProductUsecase_ListProducts_InvalidLimit(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), nil)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 101})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")

	_, err = uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: -5})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid limit")
}

func TestProductUsecase_ListProducts_SearchTooLong(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), nil)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Search: strings.Repeat("a", 101)})
	assertHTTPError(t, err, http.StatusBadRequest, "search too long")
}

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	q := repo.ProductListQuery{Page: 2, Limit: 5, Search: "laptop"}
	items := []model.Product{{ID: "1", Name: "A"}}
	pRepo.On("List", mock.Anything, q).Return(items, int64(11), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 2, Limit: 5, Search: "  laptop "})
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.Total)
	assert.Equal(t, 3, out.Pages)
	assert.Len(t, out.Items, 1)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_RepoError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	boom := errors.New("connection reset")
	pRepo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), boom)

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{})
	assertHTTPError(t, err, http.StatusInternalServerError, "Error fetching products")
	assert.ErrorIs(t, err, boom)
}

// =====================
// Detail
// =====================

func TestProductUsecase_GetProduct_ByID(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("FindByID", mock.Anything, "abc").Return(model.Product{ID: "abc"}, nil)

	p, err := uc.GetProduct(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", p.ID)

	pRepo.AssertExpectations(t)
	pRepo.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything)
}

func TestProductUsecase_GetProduct_FallsBackToSlug(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("FindByID", mock.Anything, "iphone-15-pro").Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("FindBySlug", mock.Anything, "iphone-15-pro").Return(model.Product{ID: "x", Slug: "iphone-15-pro"}, nil)

	p, err := uc.GetProduct(context.Background(), "iphone-15-pro")
	require.NoError(t, err)
	assert.Equal(t, "x", p.ID)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("FindByID", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)
	pRepo.On("FindBySlug", mock.Anything, "nope").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), "nope")
	assertHTTPError(t, err, http.StatusNotFound, "Product not found")
}

func TestProductUsecase_GetProduct_Empty(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), nil)

	_, err := uc.GetProduct(context.Background(), "  ")
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product id")
}

// =====================
// Create / Seed
// =====================

func validCreateInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:        " Desk Lamp ",
		Description: "LED desk lamp",
		Price:       39.5,
		Images:      []string{"https://picsum.photos/800/600?random=20"},
		Category:    "Home & Kitchen",
		Stock:       3,
	}
}

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Desk Lamp" && p.Slug == "desk-lamp" && p.ShortDescription == "LED desk lamp..."
	})).Return(model.Product{ID: "new", Name: "Desk Lamp"}, nil)

	p, err := uc.CreateProduct(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_Validation(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProductRepoMock), nil)

	in := validCreateInput()
	in.Images = nil
	_, err := uc.CreateProduct(context.Background(), in)
	assertHTTPError(t, err, http.StatusBadRequest, "At least one image is required")

	in = validCreateInput()
	in.Price = -1
	_, err = uc.CreateProduct(context.Background(), in)
	assertHTTPError(t, err, http.StatusBadRequest, "Price cannot be negative")
}

func TestProductUsecase_CreateProduct_Duplicate(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, repo.ErrDuplicate)

	_, err := uc.CreateProduct(context.Background(), validCreateInput())
	assertHTTPError(t, err, http.StatusConflict, "already exists")
}

func TestProductUsecase_Seed(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("ReplaceAll", mock.Anything, mock.MatchedBy(func(ps []model.Product) bool {
		return len(ps) == 8 && ps[0].Slug == "macbook-pro-16"
	})).Return(8, nil)

	n, err := uc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_Seed_RepoError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, nil)

	pRepo.On("ReplaceAll", mock.Anything, mock.Anything).Return(0, errors.New("boom"))

	_, err := uc.Seed(context.Background())
	assertHTTPError(t, err, http.StatusInternalServerError, "Error seeding database")
}
