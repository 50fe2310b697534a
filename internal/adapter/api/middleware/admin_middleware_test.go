package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"saturnalia/internal/usecase"
)

func TestAdminOnlyRequiresValidToken(t *testing.T) {
	gate := usecase.NewAdminGate("Shivam", "Saturnalia@2025")
	mw := NewAdminMiddleware(gate)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	e := echo.New()

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil)
	rec := httptest.NewRecorder()
	err := mw.AdminOnly(next)(e.NewContext(req, rec))
	if assert.Error(t, err) {
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	}

	// Valid token.
	token, err := gate.Unlock("Shivam", "Saturnalia@2025")
	assert.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/orders", nil)
	req.Header.Set("X-Admin-Token", token)
	rec = httptest.NewRecorder()
	assert.NoError(t, mw.AdminOnly(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
