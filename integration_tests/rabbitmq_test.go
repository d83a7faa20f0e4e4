package integration_tests

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/getAlby/communityhub.go/common"
	v2controllers "github.com/getAlby/communityhub.go/controllers_v2"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/rabbitmq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RabbitMQTestSuite struct {
	TestSuite
	svc           *service.CommunityhubService
	tokens        map[string]string
	cancel        context.CancelFunc
	testQueueName string
}

func (suite *RabbitMQTestSuite) SetupSuite() {
	svc, err := CommunityhubTestServiceInit()
	if err != nil {
		log.Fatalf("could not initialize test service: %v", err)
	}
	if svc.RabbitMQClient == nil {
		suite.T().Skip("RABBITMQ_URI is not set")
	}
	userTokens, err := createTokens(svc, owner, alice)
	if err != nil {
		log.Fatalf("error creating test tokens: %v", err)
	}
	suite.svc = svc
	suite.tokens = userTokens
	suite.testQueueName = "test_community_ledger_events_queue"
	suite.echo = initTestEcho(svc)

	ctx, cancel := context.WithCancel(context.Background())
	suite.cancel = cancel
	go func() {
		if err := svc.StartRabbitMQPublisher(ctx); err != nil && err != context.Canceled {
			svc.Logger.Error(err)
		}
	}()
	go func() {
		if err := svc.RabbitMQClient.SubscribeToContributions(ctx, svc.ProcessContribution); err != nil && err != context.Canceled {
			svc.Logger.Error(err)
		}
	}()
}

func (suite *RabbitMQTestSuite) TestPublishAndConsume() {
	conn, err := amqp.Dial(suite.svc.Config.RabbitMQUri)
	assert.NoError(suite.T(), err)
	defer conn.Close()

	ch, err := conn.Channel()
	assert.NoError(suite.T(), err)
	defer ch.Close()

	// wait for the publisher to declare the exchange
	assert.Eventually(suite.T(), func() bool {
		return suite.svc.EventPubSub.CountSubs(service.TopicAll) == 1
	}, 5*time.Second, 50*time.Millisecond)

	q, err := ch.QueueDeclare(suite.testQueueName, false, true, true, false, nil)
	assert.NoError(suite.T(), err)
	err = ch.QueueBind(q.Name, "community.#", suite.svc.Config.RabbitMQLedgerEventExchange, false, nil)
	assert.NoError(suite.T(), err)

	community := v2controllers.CommunityResponseBody{}
	rec := suite.doRequest(http.MethodPost, "/v2/communities", &v2controllers.CreateCommunityRequestBody{
		Name:          "RabbitMQ Community",
		PayoutAddress: payoutAddress,
	}, suite.tokens[owner])
	suite.decode(rec, http.StatusOK, &community)
	payment := v2controllers.CommunityPaymentResponseBody{}
	rec = suite.doRequest(http.MethodPost, "/v2/communities/"+itoa(community.ID)+"/payments", &v2controllers.CreateCommunityPaymentRequestBody{
		TargetAmount: 30,
	}, suite.tokens[owner])
	suite.decode(rec, http.StatusOK, &payment)

	m, err := ch.Consume(q.Name, "test-consumer", true, false, false, false, nil)
	assert.NoError(suite.T(), err)

	expected := []string{common.EventTypeCommunityCreate, common.EventTypeCommunityPaymentCreate}
	for _, eventType := range expected {
		select {
		case msg := <-m:
			event := models.LedgerEvent{}
			assert.NoError(suite.T(), json.Unmarshal(msg.Body, &event))
			assert.Equal(suite.T(), "community."+eventType, msg.RoutingKey)
			assert.Equal(suite.T(), eventType, event.Type)
			assert.Equal(suite.T(), community.ID, event.CommunityID)
		case <-time.After(5 * time.Second):
			suite.T().Fatalf("no %s event published", eventType)
		}
	}

	// a contribution announced on the contribution exchange is booked once
	body, err := json.Marshal(rabbitmq.ContributionMessage{
		CommunityID: community.ID,
		PaymentID:   payment.PaymentID,
		Amount:      30,
		Contributor: alice,
		Reference:   "rabbitmq-test-" + itoa(community.ID),
	})
	assert.NoError(suite.T(), err)
	for i := 0; i < 2; i++ {
		err = ch.PublishWithContext(context.Background(), suite.svc.Config.RabbitMQContributionExchange, "contribution.new", false, false, amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
		assert.NoError(suite.T(), err)
	}

	assert.Eventually(suite.T(), func() bool {
		p, err := suite.svc.GetCommunityPayment(context.Background(), community.ID, payment.PaymentID)
		return err == nil && p.IsComplete
	}, 5*time.Second, 50*time.Millisecond)
	p, err := suite.svc.GetCommunityPayment(context.Background(), community.ID, payment.PaymentID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(30), p.AccumulatedAmount)
}

func (suite *RabbitMQTestSuite) TearDownSuite() {
	if suite.cancel != nil {
		suite.cancel()
	}
	if suite.svc != nil && suite.svc.RabbitMQClient != nil {
		suite.svc.RabbitMQClient.Close()
	}
}

func TestRabbitMQTestSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQTestSuite))
}
