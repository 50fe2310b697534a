package handler

import (
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"
	"saturnalia/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
}

func NewProductHandler(productUseCase *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
	}
}

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Description string  `json:"description"`
	Inventory   int     `json:"inventory" validate:"gte=0"`
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, products, total, pagination.Page, pagination.PageSize)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id := c.Param("id")

	product, err := h.productUseCase.GetProductByID(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(c.Request().Context(), usecase.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Inventory:   req.Inventory,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, product)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id := c.Param("id")

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), id, usecase.ProductInput{
		Name:        req.Name,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Inventory:   req.Inventory,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id := c.Param("id")

	if err := h.productUseCase.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product deleted successfully",
	})
}
