package tokens

import (
	"crypto/subtle"
	"net/http"

	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenMiddleware guards admin endpoints with a static bearer token.
// Without a configured token every request is rejected.
func AdminTokenMiddleware(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(auth string, c echo.Context) (bool, error) {
			if token == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(auth), []byte(token)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, &responses.BadAuthError)
		},
	})
}
