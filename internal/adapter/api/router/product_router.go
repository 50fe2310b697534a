package router

import (
	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupProductRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware) {
	productHandler := handler.GetProductHandler()

	// The catalog is public; browsing requires no session.
	products := e.Group("/v1/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)

	// Product mutations sit behind the admin gate.
	admin := e.Group("/v1/admin/products")
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("", productHandler.CreateProduct)
	admin.PUT("/:id", productHandler.UpdateProduct)
	admin.DELETE("/:id", productHandler.DeleteProduct)
}
