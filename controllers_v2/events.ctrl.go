package v2controllers

import (
	"net/http"
	"strconv"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

type EventsController struct {
	svc *service.CommunityhubService
}

func NewEventsController(svc *service.CommunityhubService) *EventsController {
	return &EventsController{svc: svc}
}

type ListEventsResponseBody struct {
	Events []models.LedgerEvent `json:"events"`
	// Next is the value of after for the following page
	Next int64 `json:"next"`
}

// ListEvents godoc
// @Summary      Read the ledger event log
// @Description  Returns ledger events in emission order, starting after the given event id
// @Accept       json
// @Produce      json
// @Tags         Events
// @Param        after  query     int  false  "Return events with a greater id"
// @Param        limit  query     int  false  "Page size, at most 1000"
// @Success      200    {object}  ListEventsResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/events [get]
func (controller *EventsController) ListEvents(c echo.Context) error {
	var after int64
	var limit int
	var err error
	if c.QueryParams().Has("after") {
		after, err = strconv.ParseInt(c.QueryParam("after"), 10, 64)
		if err != nil {
			c.Logger().Errorf("Could not convert %v to int64. %v", c.QueryParam("after"), err)
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
	}
	if c.QueryParams().Has("limit") {
		limit, err = strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit < 0 {
			c.Logger().Errorf("Invalid limit %v", c.QueryParam("limit"))
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
	}

	events, err := controller.svc.ListEvents(c.Request().Context(), after, limit)
	if err != nil {
		return err
	}
	next := after
	if len(events) > 0 {
		next = events[len(events)-1].ID
	}
	return c.JSON(http.StatusOK, &ListEventsResponseBody{Events: events, Next: next})
}
