package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("supersecret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateAccessToken(secret, 3600, "alice-address")
	require.NoError(t, err)

	address, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice-address", address)

	_, err = ParseToken([]byte("other secret"), token)
	assert.Error(t, err)

	_, err = GenerateAccessToken(secret, 3600, "")
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken(secret, -10, "alice-address")
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}

func TestParseTokenRejectsOtherSigningMethods(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &jwtCustomClaims{Address: "mallory"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(secret, signed)
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ContextKeyAddress).(string))
	}, Middleware(secret))

	token, err := GenerateAccessToken(secret, 3600, "alice-address")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice-address", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
