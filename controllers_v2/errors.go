package v2controllers

import (
	"strconv"

	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/labstack/echo/v4"
)

// respondWithError answers known service errors directly and hands anything
// else to the echo error handler, which reports it to sentry.
func respondWithError(c echo.Context, err error) error {
	response := responses.ServiceError(err)
	if response == responses.GeneralServerError {
		return err
	}
	return c.JSON(response.HttpStatusCode, response)
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		c.Logger().Errorf("Invalid %s path parameter: %s", name, c.Param(name))
		return 0, false
	}
	return id, true
}
