package v2controllers

import (
	"net/http"
	"time"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/labstack/echo/v4"
)

// CommunityController : Community controller struct
type CommunityController struct {
	svc *service.CommunityhubService
}

func NewCommunityController(svc *service.CommunityhubService) *CommunityController {
	return &CommunityController{svc: svc}
}

type CreateCommunityRequestBody struct {
	Name          string `json:"name" validate:"required"`
	PayoutAddress string `json:"payout_address" validate:"required"`
}

type CommunityResponseBody struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	PayoutAddress string    `json:"payout_address"`
	Owner         string    `json:"owner"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetCommunitiesResponseBody struct {
	Communities []CommunityResponseBody `json:"communities"`
}

func newCommunityResponseBody(community *models.Community) CommunityResponseBody {
	return CommunityResponseBody{
		ID:            community.ID,
		Name:          community.Name,
		PayoutAddress: community.PayoutAddress,
		Owner:         community.Owner,
		CreatedAt:     community.CreatedAt,
	}
}

// CreateCommunity godoc
// @Summary      Create a community
// @Description  Registers a community owned by the caller. Community ids are assigned sequentially starting at 0.
// @Accept       json
// @Produce      json
// @Tags         Community
// @Param        community  body      CreateCommunityRequestBody  True  "Create community"
// @Success      200        {object}  CommunityResponseBody
// @Failure      400        {object}  responses.ErrorResponse
// @Failure      500        {object}  responses.ErrorResponse
// @Router       /v2/communities [post]
// @Security     BearerAuth
func (controller *CommunityController) CreateCommunity(c echo.Context) error {
	address := c.Get(tokens.ContextKeyAddress).(string)
	var body CreateCommunityRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create community request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create community request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	community, err := controller.svc.CreateCommunity(c.Request().Context(), body.Name, body.PayoutAddress, address)
	if err != nil {
		c.Logger().Errorf("Error creating community: owner:%s error: %v", address, err)
		return respondWithError(c, err)
	}

	response := newCommunityResponseBody(community)
	return c.JSON(http.StatusOK, &response)
}

// GetCommunity godoc
// @Summary      Retrieve a community
// @Accept       json
// @Produce      json
// @Tags         Community
// @Param        community_id  path      int  true  "Community id"
// @Success      200           {object}  CommunityResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id} [get]
func (controller *CommunityController) GetCommunity(c echo.Context) error {
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	community, err := controller.svc.FindCommunity(c.Request().Context(), communityID)
	if err != nil {
		return respondWithError(c, err)
	}

	response := newCommunityResponseBody(community)
	return c.JSON(http.StatusOK, &response)
}

// GetCommunities godoc
// @Summary      List the communities of an owner
// @Accept       json
// @Produce      json
// @Tags         Community
// @Param        owner  query     string  true  "Owner address"
// @Success      200    {object}  GetCommunitiesResponseBody
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /v2/communities [get]
func (controller *CommunityController) GetCommunities(c echo.Context) error {
	owner := c.QueryParam("owner")
	if owner == "" {
		c.Logger().Errorf("Missing owner query parameter")
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	communities, err := controller.svc.CommunitiesFor(c.Request().Context(), owner)
	if err != nil {
		return err
	}
	response := make([]CommunityResponseBody, len(communities))
	for i := range communities {
		response[i] = newCommunityResponseBody(&communities[i])
	}
	return c.JSON(http.StatusOK, &GetCommunitiesResponseBody{Communities: response})
}
