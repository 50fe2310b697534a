package handler

import (
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"
	"saturnalia/pkg/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered"`
}

func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListUserOrders(c.Request().Context(), uid, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := c.Get("uid").(string)
	orderID := c.Param("id")

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, orderID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListAllOrders(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}

func (h *OrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID := c.Param("id")

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.orderUseCase.UpdateOrderStatus(c.Request().Context(), orderID, req.Status); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Order status updated",
	})
}
