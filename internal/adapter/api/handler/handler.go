package handler

import (
	"saturnalia/internal/usecase"
)

var (
	authHandler     *AuthHandler
	productHandler  *ProductHandler
	cartHandler     *CartHandler
	checkoutHandler *CheckoutHandler
	orderHandler    *OrderHandler
	adminHandler    *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	productUseCase *usecase.ProductUseCase,
	cartUseCase *usecase.CartUseCase,
	checkoutUseCase *usecase.CheckoutUseCase,
	orderUseCase *usecase.OrderUseCase,
	adminGate *usecase.AdminGate,
) {
	authHandler = NewAuthHandler(authUseCase)
	productHandler = NewProductHandler(productUseCase)
	cartHandler = NewCartHandler(cartUseCase)
	checkoutHandler = NewCheckoutHandler(checkoutUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	adminHandler = NewAdminHandler(adminGate)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetCheckoutHandler() *CheckoutHandler {
	return checkoutHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
