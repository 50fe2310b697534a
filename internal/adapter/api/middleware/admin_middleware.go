package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"saturnalia/internal/usecase"
)

type AdminMiddleware struct {
	gate *usecase.AdminGate
}

func NewAdminMiddleware(gate *usecase.AdminGate) *AdminMiddleware {
	return &AdminMiddleware{
		gate: gate,
	}
}

// AdminOnly checks the opaque token issued by the admin gate. This gates the
// product-mutation surface; it is not a real authorization boundary.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get("X-Admin-Token")
		if token == "" || !m.gate.Validate(token) {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}

		return next(c)
	}
}
