package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksAfterBudgetExhausted(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	e := echo.New()
	call := func() error {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		return rl.Limit(next)(e.NewContext(req, rec))
	}

	for i := 0; i < 3; i++ {
		assert.NoError(t, call())
	}

	err := call()
	if assert.Error(t, err) {
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	}

	// The block holds for the whole window, not just until the next token.
	err = call()
	if assert.Error(t, err) {
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
	}
}

func TestRateLimiterIsolatesCallers(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	next := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	e := echo.New()
	call := func(addr string) error {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		return rl.Limit(next)(e.NewContext(req, rec))
	}

	assert.NoError(t, call("203.0.113.7:1234"))
	assert.Error(t, call("203.0.113.7:1234"))

	// A different caller has its own bucket.
	assert.NoError(t, call("198.51.100.9:1234"))
}
