package handler

import (
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	items, err := h.cartUseCase.GetCart(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.AddToCart(c.Request().Context(), uid, req.ProductID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item added to cart",
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	uid := c.Get("uid").(string)
	productID := c.Param("id")

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.cartUseCase.UpdateQuantity(c.Request().Context(), uid, productID, req.Quantity); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Cart updated",
	})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	uid := c.Get("uid").(string)
	productID := c.Param("id")

	if err := h.cartUseCase.RemoveFromCart(c.Request().Context(), uid, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item removed from cart",
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.cartUseCase.ClearCart(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Cart cleared",
	})
}
