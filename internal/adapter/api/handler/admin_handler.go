package handler

import (
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	gate *usecase.AdminGate
}

func NewAdminHandler(gate *usecase.AdminGate) *AdminHandler {
	return &AdminHandler{
		gate: gate,
	}
}

type adminLoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req adminLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	token, err := h.gate.Unlock(req.ID, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"admin_token": token,
	})
}

func (h *AdminHandler) Logout(c echo.Context) error {
	token := c.Request().Header.Get("X-Admin-Token")
	if token != "" {
		h.gate.Revoke(token)
	}

	return response.Success(c, map[string]string{
		"message": "Admin session closed",
	})
}
