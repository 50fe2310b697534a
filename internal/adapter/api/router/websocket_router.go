package router

import (
	"github.com/labstack/echo/v4"

	"saturnalia/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the live feed route. Auth is handled inside
// the handler so guests can still receive the product feed.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleConnection)
}
