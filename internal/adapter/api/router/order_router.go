package router

import (
	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.GET("", orderHandler.ListMyOrders)
	orders.GET("/:id", orderHandler.GetOrder)

	admin := e.Group("/v1/admin/orders")
	admin.Use(adminMiddleware.AdminOnly)
	admin.GET("", orderHandler.ListAllOrders)
	admin.PUT("/:id/status", orderHandler.UpdateOrderStatus)
}
