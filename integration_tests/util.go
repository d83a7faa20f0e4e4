package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"strconv"

	"github.com/getAlby/communityhub.go/db"
	"github.com/getAlby/communityhub.go/db/migrations"
	"github.com/getAlby/communityhub.go/lib/responses"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/lib/tokens"
	"github.com/getAlby/communityhub.go/lib/transport"
	"github.com/getAlby/communityhub.go/rabbitmq"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
	"github.com/ziflex/lecho/v3"
)

const testAdminToken = "admin-token"

// CommunityhubTestServiceInit uses DATABASE_URI when set and a private in-memory sqlite database otherwise.
func CommunityhubTestServiceInit() (svc *service.CommunityhubService, err error) {
	dbUri, ok := os.LookupEnv("DATABASE_URI")
	if !ok {
		dbUri = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}
	c := &service.Config{
		DatabaseUri:                       dbUri,
		DatabaseMaxConns:                  1,
		DatabaseMaxIdleConns:              1,
		DatabaseConnMaxLifetime:           10,
		JWTSecret:                         []byte("SECRET"),
		JWTAccessTokenExpiry:              3600,
		AdminToken:                        testAdminToken,
		DefaultRateLimit:                  1000,
		StrictRateLimit:                   1000,
		BurstRateLimit:                    1000,
		MaxNameLength:                     256,
		RabbitMQLedgerEventExchange:       "test_community_ledger_events",
		RabbitMQContributionExchange:      "test_community_contributions",
		RabbitMQContributionConsumerQueue: "test_community_contribution_consumer",
	}

	var rabbitmqClient rabbitmq.Client
	if rabbitmqUri, ok := os.LookupEnv("RABBITMQ_URI"); ok {
		c.RabbitMQUri = rabbitmqUri
		rabbitmqClient, err = rabbitmq.Dial(c.RabbitMQUri,
			rabbitmq.WithLedgerEventExchange(c.RabbitMQLedgerEventExchange),
			rabbitmq.WithContributionExchange(c.RabbitMQContributionExchange),
			rabbitmq.WithContributionConsumerQueueName(c.RabbitMQContributionConsumerQueue),
		)
		if err != nil {
			return nil, err
		}
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	svc = &service.CommunityhubService{
		Config:         c,
		DB:             dbConn,
		Logger:         lecho.New(io.Discard),
		EventPubSub:    service.NewPubsub(),
		RabbitMQClient: rabbitmqClient,
	}
	return svc, nil
}

// initTestEcho wires the full v2 API the way the server does, without the cache.
func initTestEcho(svc *service.CommunityhubService) *echo.Echo {
	e := transport.InitEcho(svc.Config, svc.Logger)
	logMw := transport.CreateLoggingMiddleware(svc.Logger)
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(svc.Config.StrictRateLimit, svc.Config.BurstRateLimit)
	secured := e.Group("", tokens.Middleware(svc.Config.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(svc.Config.JWTSecret), strictRateLimitMiddleware, logMw)
	transport.RegisterV2Endpoints(svc, e, secured, securedWithStrictRateLimit, tokens.AdminTokenMiddleware(svc.Config.AdminToken), nil, logMw)
	return e
}

func createTokens(svc *service.CommunityhubService, addresses ...string) (map[string]string, error) {
	result := map[string]string{}
	for _, address := range addresses {
		token, err := tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, address)
		if err != nil {
			return nil, err
		}
		result[address] = token
	}
	return result, nil
}

type TestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (suite *TestSuite) doRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *TestSuite) decode(rec *httptest.ResponseRecorder, status int, target interface{}) {
	assert.Equal(suite.T(), status, rec.Code, rec.Body.String())
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(target))
}

func (suite *TestSuite) checkErrResponse(rec *httptest.ResponseRecorder, status int) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	suite.decode(rec, status, errorResponse)
	return errorResponse
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}
