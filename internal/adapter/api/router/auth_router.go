package router

import (
	"time"

	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	// Credential endpoints are throttled: 5 attempts per minute per IP.
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)

	// Public routes
	e.POST("/v1/auth/register", authHandler.Register, loginLimiter.Limit)
	e.POST("/v1/auth/login", authHandler.Login, loginLimiter.Limit)

	// Protected routes
	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/logout", authHandler.Logout)
}
