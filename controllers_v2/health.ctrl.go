package v2controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HealthController struct {
}

func NewHealthController() *HealthController {
	return &HealthController{}
}

type HealthResponse struct {
	Result string `json:"result"`
}

// Check godoc
// @Summary      Check system health
// @Description  Liveness probe
// @Produce      json
// @Tags         Health
// @Success      200  {object}  HealthResponse
// @Router       /v2/health [get]
func (controller *HealthController) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}
