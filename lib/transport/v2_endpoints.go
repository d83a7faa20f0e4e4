package transport

import (
	v2controllers "github.com/getAlby/communityhub.go/controllers_v2"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterV2Endpoints(svc *service.CommunityhubService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, adminMw echo.MiddlewareFunc, cacheMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	communityCtrl := v2controllers.NewCommunityController(svc)
	paymentCtrl := v2controllers.NewCommunityPaymentController(svc)

	e.GET("/v2/health", v2controllers.NewHealthController().Check)

	secured.POST("/v2/communities", communityCtrl.CreateCommunity)
	e.GET("/v2/communities", communityCtrl.GetCommunities, logMw)
	// communities never change once created
	if cacheMw != nil {
		e.GET("/v2/communities/:community_id", communityCtrl.GetCommunity, cacheMw, logMw)
	} else {
		e.GET("/v2/communities/:community_id", communityCtrl.GetCommunity, logMw)
	}
	secured.POST("/v2/communities/:community_id/payments", paymentCtrl.CreateCommunityPayment)
	e.GET("/v2/communities/:community_id/payments", paymentCtrl.GetCommunityPayments, logMw)
	e.GET("/v2/communities/:community_id/payments/:payment_id", paymentCtrl.GetCommunityPayment, logMw)
	e.GET("/v2/communities/:community_id/payments/:payment_id/qr", paymentCtrl.QR)
	securedWithStrictRateLimit.POST("/v2/communities/:community_id/payments/:payment_id/contributions", paymentCtrl.MakePayment)

	secured.GET("/v2/balance", v2controllers.NewBalanceController(svc).Balance)
	e.GET("/v2/events", v2controllers.NewEventsController(svc).ListEvents, logMw)

	//require admin token for minting tokens
	if svc.Config.AdminToken != "" {
		e.POST("/v2/admin/tokens", v2controllers.NewTokenController(svc).CreateToken, adminMw, logMw)
	}
}
