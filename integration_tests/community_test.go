package integration_tests

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"testing"

	"github.com/getAlby/communityhub.go/common"
	v2controllers "github.com/getAlby/communityhub.go/controllers_v2"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const (
	owner         = "owner-address"
	payoutAddress = "community-payout-address"
	alice         = "alice-address"
	bob           = "bob-address"
)

type CommunityTestSuite struct {
	TestSuite
	service *service.CommunityhubService
	tokens  map[string]string
}

func (suite *CommunityTestSuite) SetupSuite() {
	svc, err := CommunityhubTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	userTokens, err := createTokens(svc, owner, alice, bob)
	if err != nil {
		log.Fatalf("Error creating test tokens: %v", err)
	}
	suite.service = svc
	suite.tokens = userTokens
	suite.echo = initTestEcho(svc)
}

func (suite *CommunityTestSuite) createCommunity(name string) v2controllers.CommunityResponseBody {
	community := v2controllers.CommunityResponseBody{}
	rec := suite.doRequest(http.MethodPost, "/v2/communities", &v2controllers.CreateCommunityRequestBody{
		Name:          name,
		PayoutAddress: payoutAddress,
	}, suite.tokens[owner])
	suite.decode(rec, http.StatusOK, &community)
	return community
}

func (suite *CommunityTestSuite) createPayment(communityID, target int64) v2controllers.CommunityPaymentResponseBody {
	payment := v2controllers.CommunityPaymentResponseBody{}
	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/communities/%d/payments", communityID), &v2controllers.CreateCommunityPaymentRequestBody{
		TargetAmount: target,
	}, suite.tokens[owner])
	suite.decode(rec, http.StatusOK, &payment)
	return payment
}

func (suite *CommunityTestSuite) contribute(communityID, paymentID, amount int64, contributor string) (v2controllers.CommunityPaymentResponseBody, int) {
	payment := v2controllers.CommunityPaymentResponseBody{}
	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/communities/%d/payments/%d/contributions", communityID, paymentID), &v2controllers.MakePaymentRequestBody{
		Amount: amount,
	}, suite.tokens[contributor])
	if rec.Code == http.StatusOK {
		suite.decode(rec, http.StatusOK, &payment)
	}
	return payment, rec.Code
}

func (suite *CommunityTestSuite) balance(address string) int64 {
	balance := v2controllers.BalanceResponse{}
	rec := suite.doRequest(http.MethodGet, "/v2/balance", nil, suite.tokens[address])
	suite.decode(rec, http.StatusOK, &balance)
	return balance.Balance
}

func (suite *CommunityTestSuite) TestCommunityLifecycle() {
	payoutBefore, err := suite.service.CurrentBalance(context.Background(), payoutAddress)
	assert.NoError(suite.T(), err)
	community := suite.createCommunity("Test Community")
	assert.Equal(suite.T(), "Test Community", community.Name)
	assert.Equal(suite.T(), owner, community.Owner)

	next := suite.createCommunity("Second Community")
	assert.Equal(suite.T(), community.ID+1, next.ID)

	fetched := v2controllers.CommunityResponseBody{}
	rec := suite.doRequest(http.MethodGet, fmt.Sprintf("/v2/communities/%d", community.ID), nil, "")
	suite.decode(rec, http.StatusOK, &fetched)
	assert.Equal(suite.T(), payoutAddress, fetched.PayoutAddress)

	payment := suite.createPayment(community.ID, 100)
	assert.Equal(suite.T(), int64(0), payment.PaymentID)
	assert.Equal(suite.T(), int64(100), payment.TargetAmount)
	assert.False(suite.T(), payment.IsComplete)

	updated, code := suite.contribute(community.ID, payment.PaymentID, 60, alice)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.False(suite.T(), updated.IsComplete)
	assert.Equal(suite.T(), int64(60), updated.AccumulatedAmount)

	updated, code = suite.contribute(community.ID, payment.PaymentID, 40, bob)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.True(suite.T(), updated.IsComplete)
	assert.Equal(suite.T(), bob, updated.FinalContributor)
	assert.NotNil(suite.T(), updated.CompletedAt)

	_, code = suite.contribute(community.ID, payment.PaymentID, 10, alice)
	assert.Equal(suite.T(), http.StatusConflict, code)

	fetchedPayment := v2controllers.CommunityPaymentResponseBody{}
	rec = suite.doRequest(http.MethodGet, fmt.Sprintf("/v2/communities/%d/payments/%d", community.ID, payment.PaymentID), nil, "")
	suite.decode(rec, http.StatusOK, &fetchedPayment)
	assert.Equal(suite.T(), int64(100), fetchedPayment.AccumulatedAmount)
	assert.True(suite.T(), fetchedPayment.IsComplete)

	// exactly the target is paid out, not the sum of the contributions including the rejected one
	payoutAfter, err := suite.service.CurrentBalance(context.Background(), payoutAddress)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), payoutBefore+100, payoutAfter)
	assert.Equal(suite.T(), int64(0), suite.balance(owner))

	events := v2controllers.ListEventsResponseBody{}
	rec = suite.doRequest(http.MethodGet, "/v2/events?limit=1000", nil, "")
	suite.decode(rec, http.StatusOK, &events)
	types := []string{}
	for _, event := range events.Events {
		if event.CommunityID == community.ID {
			types = append(types, event.Type)
		}
	}
	assert.Equal(suite.T(), []string{
		common.EventTypeCommunityCreate,
		common.EventTypeCommunityPaymentCreate,
		common.EventTypeCommunityPaymentSent,
		common.EventTypeCommunityPaymentSent,
		common.EventTypeCommunityPaymentTotal,
	}, types)
}

func (suite *CommunityTestSuite) TestListCommunities() {
	// a fresh owner so a shared database does not leak other runs into the list
	lister := "lister-" + uuid.NewString()
	listerTokens, err := createTokens(suite.service, lister)
	assert.NoError(suite.T(), err)

	created := []v2controllers.CommunityResponseBody{}
	for _, name := range []string{"First", "Second"} {
		community := v2controllers.CommunityResponseBody{}
		rec := suite.doRequest(http.MethodPost, "/v2/communities", &v2controllers.CreateCommunityRequestBody{
			Name:          name,
			PayoutAddress: payoutAddress,
		}, listerTokens[lister])
		suite.decode(rec, http.StatusOK, &community)
		created = append(created, community)
	}

	listed := v2controllers.GetCommunitiesResponseBody{}
	rec := suite.doRequest(http.MethodGet, "/v2/communities?owner="+lister, nil, "")
	suite.decode(rec, http.StatusOK, &listed)
	assert.Len(suite.T(), listed.Communities, 2)
	for i, community := range listed.Communities {
		assert.Equal(suite.T(), created[i].ID, community.ID)
		assert.Equal(suite.T(), lister, community.Owner)
	}

	rec = suite.doRequest(http.MethodGet, "/v2/communities", nil, "")
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *CommunityTestSuite) TestErrors() {
	community := suite.createCommunity("Error Community")

	// non owner
	rec := suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/communities/%d/payments", community.ID), &v2controllers.CreateCommunityPaymentRequestBody{
		TargetAmount: 100,
	}, suite.tokens[alice])
	errResponse := suite.checkErrResponse(rec, http.StatusForbidden)
	assert.Equal(suite.T(), responses.UnauthorizedError.Code, errResponse.Code)

	// invalid target
	rec = suite.doRequest(http.MethodPost, fmt.Sprintf("/v2/communities/%d/payments", community.ID), &v2controllers.CreateCommunityPaymentRequestBody{
		TargetAmount: -1,
	}, suite.tokens[owner])
	errResponse = suite.checkErrResponse(rec, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.InvalidAmountError.Code, errResponse.Code)

	// unknown community
	rec = suite.doRequest(http.MethodPost, "/v2/communities/999999/payments", &v2controllers.CreateCommunityPaymentRequestBody{
		TargetAmount: 100,
	}, suite.tokens[owner])
	suite.checkErrResponse(rec, http.StatusNotFound)

	// unknown payment request
	_, code := suite.contribute(community.ID, 42, 10, alice)
	assert.Equal(suite.T(), http.StatusNotFound, code)

	payment := suite.createPayment(community.ID, 100)
	_, code = suite.contribute(community.ID, payment.PaymentID, 0, alice)
	assert.Equal(suite.T(), http.StatusBadRequest, code)
	_, code = suite.contribute(community.ID, payment.PaymentID, -10, alice)
	assert.Equal(suite.T(), http.StatusBadRequest, code)

	rec = suite.doRequest(http.MethodGet, fmt.Sprintf("/v2/communities/%d/payments/77", community.ID), nil, "")
	suite.checkErrResponse(rec, http.StatusNotFound)

	rec = suite.doRequest(http.MethodGet, "/v2/communities/abc", nil, "")
	suite.checkErrResponse(rec, http.StatusBadRequest)

	// missing token
	rec = suite.doRequest(http.MethodPost, "/v2/communities", &v2controllers.CreateCommunityRequestBody{
		Name:          "No Auth",
		PayoutAddress: payoutAddress,
	}, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)

	// missing name
	rec = suite.doRequest(http.MethodPost, "/v2/communities", &v2controllers.CreateCommunityRequestBody{
		PayoutAddress: payoutAddress,
	}, suite.tokens[owner])
	suite.checkErrResponse(rec, http.StatusBadRequest)
}

func (suite *CommunityTestSuite) TestOvershootRefund() {
	community := suite.createCommunity("Overshoot Community")
	payment := suite.createPayment(community.ID, 50)
	refundBefore := suite.balance(alice)

	updated, code := suite.contribute(community.ID, payment.PaymentID, 80, alice)
	assert.Equal(suite.T(), http.StatusOK, code)
	assert.True(suite.T(), updated.IsComplete)
	assert.Equal(suite.T(), int64(80), updated.AccumulatedAmount)
	assert.Equal(suite.T(), int64(30), updated.SurplusRefunded)
	assert.Equal(suite.T(), refundBefore+30, suite.balance(alice))
}

func (suite *CommunityTestSuite) TestQRAndHealth() {
	community := suite.createCommunity("QR Community")
	payment := suite.createPayment(community.ID, 10)

	rec := suite.doRequest(http.MethodGet, fmt.Sprintf("/v2/communities/%d/payments/%d/qr", community.ID, payment.PaymentID), nil, "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(suite.T(), rec.Body.Bytes())

	health := v2controllers.HealthResponse{}
	rec = suite.doRequest(http.MethodGet, "/v2/health", nil, "")
	suite.decode(rec, http.StatusOK, &health)
	assert.Equal(suite.T(), "OK", health.Result)
}

func (suite *CommunityTestSuite) TestAdminTokens() {
	rec := suite.doRequest(http.MethodPost, "/v2/admin/tokens", &v2controllers.CreateTokenRequestBody{Address: "carol-address"}, testAdminToken)
	token := v2controllers.CreateTokenResponseBody{}
	suite.decode(rec, http.StatusOK, &token)
	assert.Equal(suite.T(), "carol-address", token.Address)

	balance := v2controllers.BalanceResponse{}
	rec = suite.doRequest(http.MethodGet, "/v2/balance", nil, token.AccessToken)
	suite.decode(rec, http.StatusOK, &balance)
	assert.Equal(suite.T(), "carol-address", balance.Address)
	assert.Equal(suite.T(), int64(0), balance.Balance)

	rec = suite.doRequest(http.MethodPost, "/v2/admin/tokens", &v2controllers.CreateTokenRequestBody{Address: "carol-address"}, suite.tokens[alice])
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
}

func (suite *CommunityTestSuite) TearDownSuite() {
	suite.service.DB.Close()
}

func TestCommunitySuite(t *testing.T) {
	suite.Run(t, new(CommunityTestSuite))
}
