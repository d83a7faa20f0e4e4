package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAdminTokenMiddleware(t *testing.T) {
	e := echo.New()
	e.POST("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AdminTokenMiddleware("admin-token"))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer admin-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminTokenMiddlewareWithoutToken(t *testing.T) {
	e := echo.New()
	e.POST("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AdminTokenMiddleware(""))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer ")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
