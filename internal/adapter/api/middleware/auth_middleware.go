package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"saturnalia/internal/usecase"
)

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// Authenticate requires a valid bearer token whose identity passes the
// institutional domain policy, and puts uid and email on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		identity, err := m.authUseCase.VerifySession(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", identity.UID)
		c.Set("email", identity.Email)

		return next(c)
	}
}
