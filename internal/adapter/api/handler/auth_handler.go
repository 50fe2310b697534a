package handler

import (
	"saturnalia/internal/usecase"
	"saturnalia/pkg/response"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		UID:          result.Identity.UID,
		Email:        result.Identity.Email,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		UID:          result.Identity.UID,
		Email:        result.Identity.Email,
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Signed out",
	})
}
