package handler

import (
	"saturnalia/internal/domain/entity"
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

type checkoutRequest struct {
	Shipping struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Phone     string `json:"phone"`
		Address   string `json:"address" validate:"required"`
		City      string `json:"city" validate:"required"`
		State     string `json:"state"`
		ZipCode   string `json:"zip_code" validate:"required"`
		Country   string `json:"country" validate:"required"`
	} `json:"shipping"`
	CardNumber string `json:"card_number" validate:"required,min=12"`
	HolderName string `json:"holder_name" validate:"required"`
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	uid := c.Get("uid").(string)
	email, _ := c.Get("email").(string)

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.checkoutUseCase.Checkout(c.Request().Context(), &entity.Identity{UID: uid, Email: email}, usecase.CheckoutInput{
		Shipping: entity.ShippingDetails{
			FirstName: req.Shipping.FirstName,
			LastName:  req.Shipping.LastName,
			Email:     req.Shipping.Email,
			Phone:     req.Shipping.Phone,
			Address:   req.Shipping.Address,
			City:      req.Shipping.City,
			State:     req.Shipping.State,
			ZipCode:   req.Shipping.ZipCode,
			Country:   req.Shipping.Country,
		},
		CardNumber: req.CardNumber,
		HolderName: req.HolderName,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"order":        result.Order,
		"cart_cleared": result.CartCleared,
	})
}
