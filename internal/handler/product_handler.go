package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type productListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Data    []model.Product `json:"data"`
}

type productResponse struct {
	Success bool          `json:"success"`
	Data    model.Product `json:"data"`
}

type createProductRequest struct {
	Name             string   `json:"name"`
	Slug             string   `json:"slug"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Price            float64  `json:"price"`
	Images           []string `json:"images"`
	Category         string   `json:"category"`
	Stock            int      `json:"stock"`
}

// 商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.GET("/products/:id", h.detail)
	g.POST("/products", h.create)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := usecase.DefaultPage
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 1 {
			return badRequest(c, "invalid page")
		}
		page = p
	}

	// limit（default 20）
	limit := usecase.DefaultLimit
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return badRequest(c, "invalid limit")
		}
		limit = l
	}

	out, err := h.uc.ListProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:   page,
		Limit:  limit,
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, productListResponse{
		Success: true,
		Count:   len(out.Items),
		Total:   out.Total,
		Page:    out.Page,
		Pages:   out.Pages,
		Data:    out.Items,
	})
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, productResponse{Success: true, Data: p})
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid json")
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:             req.Name,
		Slug:             req.Slug,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		Images:           req.Images,
		Category:         req.Category,
		Stock:            req.Stock,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, productResponse{Success: true, Data: p})
}
