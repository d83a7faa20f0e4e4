package v2controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

// CommunityPaymentController : Community payment request controller struct
type CommunityPaymentController struct {
	svc *service.CommunityhubService
}

func NewCommunityPaymentController(svc *service.CommunityhubService) *CommunityPaymentController {
	return &CommunityPaymentController{svc: svc}
}

type CreateCommunityPaymentRequestBody struct {
	TargetAmount int64 `json:"target_amount" validate:"required"`
}

type MakePaymentRequestBody struct {
	Amount    int64  `json:"amount" validate:"required"`
	Reference string `json:"reference" validate:"omitempty,max=255"`
}

type CommunityPaymentResponseBody struct {
	CommunityID       int64      `json:"community_id"`
	PaymentID         int64      `json:"payment_id"`
	TargetAmount      int64      `json:"target_amount"`
	AccumulatedAmount int64      `json:"accumulated_amount"`
	IsComplete        bool       `json:"is_complete"`
	FinalContributor  string     `json:"final_contributor,omitempty"`
	SurplusRefunded   int64      `json:"surplus_refunded"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

type GetCommunityPaymentsResponseBody struct {
	Payments []CommunityPaymentResponseBody `json:"payments"`
}

func newCommunityPaymentResponseBody(payment *models.CommunityPayment) CommunityPaymentResponseBody {
	body := CommunityPaymentResponseBody{
		CommunityID:       payment.CommunityID,
		PaymentID:         payment.PaymentID,
		TargetAmount:      payment.TargetAmount,
		AccumulatedAmount: payment.AccumulatedAmount,
		IsComplete:        payment.IsComplete,
		FinalContributor:  payment.FinalContributor,
		SurplusRefunded:   payment.SurplusRefunded,
		CreatedAt:         payment.CreatedAt,
	}
	if !payment.CompletedAt.IsZero() {
		completedAt := payment.CompletedAt.Time
		body.CompletedAt = &completedAt
	}
	return body
}

// CreateCommunityPayment godoc
// @Summary      Open a payment request
// @Description  Opens a payment request for a community. Only the community owner may do this.
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        community_id  path      int                                true  "Community id"
// @Param        payment       body      CreateCommunityPaymentRequestBody  True  "Create payment request"
// @Success      200           {object}  CommunityPaymentResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      403           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id}/payments [post]
// @Security     BearerAuth
func (controller *CommunityPaymentController) CreateCommunityPayment(c echo.Context) error {
	address := c.Get(tokens.ContextKeyAddress).(string)
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body CreateCommunityPaymentRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create payment request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	// a missing or zero target is an invalid amount, not a malformed body
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create payment request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
	}

	payment, err := controller.svc.CreateCommunityPayment(c.Request().Context(), communityID, body.TargetAmount, address)
	if err != nil {
		c.Logger().Errorf("Error creating payment request: community_id:%d caller:%s error: %v", communityID, address, err)
		return respondWithError(c, err)
	}

	return c.JSON(http.StatusOK, newCommunityPaymentResponseBody(payment))
}

// GetCommunityPayment godoc
// @Summary      Retrieve a payment request
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        community_id  path      int  true  "Community id"
// @Param        payment_id    path      int  true  "Payment id"
// @Success      200           {object}  CommunityPaymentResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id}/payments/{payment_id} [get]
func (controller *CommunityPaymentController) GetCommunityPayment(c echo.Context) error {
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	paymentID, ok := parseIDParam(c, "payment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.GetCommunityPayment(c.Request().Context(), communityID, paymentID)
	if err != nil {
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newCommunityPaymentResponseBody(payment))
}

// GetCommunityPayments godoc
// @Summary      List the payment requests of a community
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        community_id  path      int  true  "Community id"
// @Success      200           {object}  GetCommunityPaymentsResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id}/payments [get]
func (controller *CommunityPaymentController) GetCommunityPayments(c echo.Context) error {
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payments, err := controller.svc.CommunityPaymentsFor(c.Request().Context(), communityID)
	if err != nil {
		return err
	}
	response := make([]CommunityPaymentResponseBody, len(payments))
	for i := range payments {
		response[i] = newCommunityPaymentResponseBody(&payments[i])
	}
	return c.JSON(http.StatusOK, &GetCommunityPaymentsResponseBody{Payments: response})
}

// MakePayment godoc
// @Summary      Contribute to a payment request
// @Description  Adds a contribution. The contribution that reaches the target completes the request and pays the target amount out to the community.
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        community_id  path      int                     true  "Community id"
// @Param        payment_id    path      int                     true  "Payment id"
// @Param        contribution  body      MakePaymentRequestBody  True  "Contribution"
// @Success      200           {object}  CommunityPaymentResponseBody
// @Failure      400           {object}  responses.ErrorResponse
// @Failure      404           {object}  responses.ErrorResponse
// @Failure      409           {object}  responses.ErrorResponse
// @Failure      500           {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id}/payments/{payment_id}/contributions [post]
// @Security     BearerAuth
func (controller *CommunityPaymentController) MakePayment(c echo.Context) error {
	address := c.Get(tokens.ContextKeyAddress).(string)
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	paymentID, ok := parseIDParam(c, "payment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body MakePaymentRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load contribution request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid contribution request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
	}

	payment, err := controller.svc.Contribute(c.Request().Context(), service.ContributionRequest{
		CommunityID: communityID,
		PaymentID:   paymentID,
		Amount:      body.Amount,
		Contributor: address,
		Reference:   body.Reference,
	})
	if err != nil {
		c.Logger().Errorf("Error contributing: community_id:%d payment_id:%d contributor:%s error: %v", communityID, paymentID, address, err)
		return respondWithError(c, err)
	}
	return c.JSON(http.StatusOK, newCommunityPaymentResponseBody(payment))
}

// QR godoc
// @Summary      QR code of a payment request
// @Description  PNG QR code encoding the contribution URL of a payment request
// @Produce      png
// @Tags         Payment
// @Param        community_id  path  int  true  "Community id"
// @Param        payment_id    path  int  true  "Payment id"
// @Success      200
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v2/communities/{community_id}/payments/{payment_id}/qr [get]
func (controller *CommunityPaymentController) QR(c echo.Context) error {
	communityID, ok := parseIDParam(c, "community_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	paymentID, ok := parseIDParam(c, "payment_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if _, err := controller.svc.GetCommunityPayment(c.Request().Context(), communityID, paymentID); err != nil {
		return respondWithError(c, err)
	}

	url := fmt.Sprintf("%s://%s/v2/communities/%d/payments/%d/contributions", c.Scheme(), c.Request().Host, communityID, paymentID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
