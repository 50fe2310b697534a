package router

import (
	"time"

	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()
	fileHandler := handler.GetFileHandler()

	// The gate is a static credential pair; throttle guesses hard.
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)

	e.POST("/v1/admin/login", adminHandler.Login, loginLimiter.Limit)

	admin := e.Group("/v1/admin")
	admin.Use(adminMiddleware.AdminOnly)
	admin.POST("/logout", adminHandler.Logout)
	admin.POST("/uploads/product-image", fileHandler.UploadProductImage)
}
