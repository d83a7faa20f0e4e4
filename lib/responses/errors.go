package responses

import (
	"errors"
	"net/http"

	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var NotFoundError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "not found",
	HttpStatusCode: 404,
}

var UnauthorizedError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "only the community owner can do this",
	HttpStatusCode: 403,
}

var InvalidAmountError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "invalid amount",
	HttpStatusCode: 400,
}

var AlreadyCompleteError = ErrorResponse{
	Error:          true,
	Code:           5,
	Message:        "payment request is already complete",
	HttpStatusCode: 409,
}

var DuplicateContributionError = ErrorResponse{
	Error:          true,
	Code:           7,
	Message:        "contribution reference was already used",
	HttpStatusCode: 409,
}

// ServiceError maps a service error to its response, unknown errors become GeneralServerError.
func ServiceError(err error) ErrorResponse {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return NotFoundError
	case errors.Is(err, service.ErrUnauthorized):
		return UnauthorizedError
	case errors.Is(err, service.ErrInvalidAmount):
		return InvalidAmountError
	case errors.Is(err, service.ErrAlreadyComplete):
		return AlreadyCompleteError
	case errors.Is(err, service.ErrDuplicateContribution):
		return DuplicateContributionError
	case errors.Is(err, service.ErrInvalidName), errors.Is(err, service.ErrInvalidAddress):
		return BadArgumentsError
	}
	return GeneralServerError
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("Address", c.Get("Address"))
			hub.CaptureException(err)
		})
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		c.JSON(he.Code, he.Message)
		return
	}
	response := ServiceError(err)
	c.JSON(response.HttpStatusCode, response)
}

// isErrAllowedForSentry filters out bad auth errors, they are client mistakes.
func isErrAllowedForSentry(err error) bool {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return true
	}
	if he.Code == http.StatusUnauthorized {
		return false
	}
	switch msg := he.Message.(type) {
	case echo.Map:
		return msg["code"] != BadAuthError.Code
	case ErrorResponse:
		return msg.Code != BadAuthError.Code
	case *ErrorResponse:
		return msg.Code != BadAuthError.Code
	}
	return true
}
