package router

import (
	"saturnalia/internal/adapter/api/handler"
	"saturnalia/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, wsHandler *handler.WebSocketHandler) {
	SetupAuthRouter(e, authMiddleware)
	SetupProductRouter(e, adminMiddleware)
	SetupCartRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware, adminMiddleware)
	SetupAdminRouter(e, adminMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
