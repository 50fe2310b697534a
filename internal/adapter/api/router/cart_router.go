package router

import (
	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	cartHandler := handler.GetCartHandler()
	checkoutHandler := handler.GetCheckoutHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate)
	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddToCart)
	cart.PUT("/items/:id", cartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	cart.DELETE("", cartHandler.ClearCart)

	checkout := e.Group("/v1/checkout")
	checkout.Use(authMiddleware.Authenticate)
	checkout.POST("", checkoutHandler.Checkout)
}
