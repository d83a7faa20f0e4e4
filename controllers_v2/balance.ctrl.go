package v2controllers

import (
	"net/http"

	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

// BalanceController : BalanceController struct
type BalanceController struct {
	svc *service.CommunityhubService
}

func NewBalanceController(svc *service.CommunityhubService) *BalanceController {
	return &BalanceController{svc: svc}
}

type BalanceResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

// Balance godoc
// @Summary      Retrieve balance
// @Description  Amount the caller has received as community payouts and surplus refunds
// @Accept       json
// @Produce      json
// @Tags         Account
// @Success      200  {object}  BalanceResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/balance [get]
// @Security     BearerAuth
func (controller *BalanceController) Balance(c echo.Context) error {
	address := c.Get(tokens.ContextKeyAddress).(string)
	balance, err := controller.svc.CurrentBalance(c.Request().Context(), address)
	if err != nil {
		c.Logger().Errorf("Error fetching balance for address:%s error: %v", address, err)
		return err
	}
	return c.JSON(http.StatusOK, &BalanceResponse{
		Address: address,
		Balance: balance,
	})
}
