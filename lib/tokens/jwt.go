package tokens

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

// ContextKeyAddress is the echo context key holding the authenticated address.
const ContextKeyAddress = "Address"

type jwtCustomClaims struct {
	Address string `json:"address"`

	jwt.StandardClaims
}

// GenerateAccessToken : Generate Access Token
func GenerateAccessToken(secret []byte, expiryInSeconds int, address string) (string, error) {
	if address == "" {
		return "", errors.New("address is required")
	}
	claims := &jwtCustomClaims{
		Address: address,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(time.Second * time.Duration(expiryInSeconds)).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	t, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return t, nil
}

// ParseToken returns the address of a valid access token.
func ParseToken(secret []byte, token string) (string, error) {
	claims := &jwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected Signing Method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Address == "" {
		return "", errors.New("invalid token")
	}
	return claims.Address, nil
}

// Middleware authenticates requests with a bearer token and stores the address in the context.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme := "Bearer "
			if len(auth) <= len(scheme) || !strings.EqualFold(auth[:len(scheme)], scheme) {
				return echo.NewHTTPError(http.StatusUnauthorized, &responses.BadAuthError)
			}
			address, err := ParseToken(secret, auth[len(scheme):])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, &responses.BadAuthError)
			}
			c.Set(ContextKeyAddress, address)
			return next(c)
		}
	}
}
