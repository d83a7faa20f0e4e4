package v2controllers

import (
	"net/http"

	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

// TokenController : mints access tokens, admin only
type TokenController struct {
	svc *service.CommunityhubService
}

func NewTokenController(svc *service.CommunityhubService) *TokenController {
	return &TokenController{svc: svc}
}

type CreateTokenRequestBody struct {
	Address string `json:"address" validate:"required"`
}

type CreateTokenResponseBody struct {
	Address     string `json:"address"`
	AccessToken string `json:"access_token"`
}

// CreateToken godoc
// @Summary      Mint an access token
// @Description  Issues an access token authenticating the given address
// @Accept       json
// @Produce      json
// @Tags         Admin
// @Param        token  body      CreateTokenRequestBody  True  "Address"
// @Success      200    {object}  CreateTokenResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      401    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/admin/tokens [post]
// @Security     AdminToken
func (controller *TokenController) CreateToken(c echo.Context) error {
	var body CreateTokenRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create token request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create token request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	token, err := tokens.GenerateAccessToken(controller.svc.Config.JWTSecret, controller.svc.Config.JWTAccessTokenExpiry, body.Address)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &CreateTokenResponseBody{
		Address:     body.Address,
		AccessToken: token,
	})
}
