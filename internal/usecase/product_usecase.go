package usecase

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/seed"

	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	maxSearchLen = 100
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	log         *zap.Logger
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, log *zap.Logger) *ProductUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductUsecase{
		productRepo: productRepo,
		log:         log,
	}
}

// GET /productsの入力DTO（0は未指定）
type ListProductsInput struct {
	Page   int
	Limit  int
	Search string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Pages int             `json:"pages"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page == 0 {
		in.Page = DefaultPage
	}
	if in.Limit == 0 {
		in.Limit = DefaultLimit
	}
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	search := strings.TrimSpace(in.Search)
	if utf8.RuneCountInString(search) > maxSearchLen {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Page:   in.Page,
		Limit:  in.Limit,
		Search: search,
	})
	if err != nil {
		u.log.Error("list products failed", zap.Error(err))
		return ProductListOutput{}, wrapHTTPError(http.StatusInternalServerError, "Error fetching products", err)
	}
	if items == nil {
		items = []model.Product{}
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
		Pages: int(math.Ceil(float64(total) / float64(in.Limit))),
	}, nil
}

// GetProduct はIDで探し、無ければslugで探す。
func (u *ProductUsecase) GetProduct(ctx context.Context, idOrSlug string) (model.Product, error) {
	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, idOrSlug)
	if errors.Is(err, repo.ErrNotFound) {
		p, err = u.productRepo.FindBySlug(ctx, idOrSlug)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		u.log.Error("get product failed", zap.String("id", idOrSlug), zap.Error(err))
		return model.Product{}, wrapHTTPError(http.StatusInternalServerError, "Error fetching product", err)
	}
	return p, nil
}

type CreateProductInput struct {
	Name             string
	Slug             string
	Description      string
	ShortDescription string
	Price            float64
	Images           []string
	Category         string
	Stock            int
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	p := model.Product{
		Name:             in.Name,
		Slug:             in.Slug,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		Images:           in.Images,
		Category:         in.Category,
		Stock:            in.Stock,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := u.productRepo.Create(ctx, p)
	if errors.Is(err, repo.ErrDuplicate) {
		return model.Product{}, NewHTTPError(http.StatusConflict, "Product with this slug already exists")
	}
	if err != nil {
		u.log.Error("create product failed", zap.String("slug", p.Slug), zap.Error(err))
		return model.Product{}, wrapHTTPError(http.StatusInternalServerError, "Error creating product", err)
	}
	return created, nil
}

// Seed はカタログをサンプル商品で入れ替え、件数を返す。
func (u *ProductUsecase) Seed(ctx context.Context) (int, error) {
	products := seed.Products()
	for i := range products {
		products[i].Normalize()
		if err := products[i].Validate(); err != nil {
			return 0, wrapHTTPError(http.StatusInternalServerError, "Error seeding database", err)
		}
	}

	n, err := u.productRepo.ReplaceAll(ctx, products)
	if err != nil {
		u.log.Error("seed failed", zap.Error(err))
		return 0, wrapHTTPError(http.StatusInternalServerError, "Error seeding database", err)
	}
	u.log.Info("database seeded", zap.Int("count", n))
	return n, nil
}
