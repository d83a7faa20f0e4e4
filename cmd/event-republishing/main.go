package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/getAlby/communityhub.go/db"
	"github.com/getAlby/communityhub.go/lib/logging"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getAlby/communityhub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// republishes the stored ledger events with FROM_ID <= id <= TO_ID to rabbitmq
// TO_ID=0 republishes everything from FROM_ID on
func main() {

	c := &service.Config{}
	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		fmt.Printf("Error loading environment variables: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Logger(c.LogFilePath)
	fromID, toID, err := loadIdRangeFromEnv()
	if err != nil {
		logger.Fatalf("Could not load from and to id from env %v", err)
	}
	if c.RabbitMQUri == "" {
		logger.Fatal("RABBITMQ_URI is required to republish events")
	}
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{Dsn: c.SentryDSN}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
	}
	// Open a DB connection based on the configured DATABASE_URI
	dbConn, err := db.Open(c)
	if err != nil {
		logger.Fatalf("Error initializing db connection: %v", err)
	}
	defer dbConn.Close()

	amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAMQPLogger(logger))
	if err != nil {
		logger.Fatal(err)
	}
	rabbitmqClient, err := rabbitmq.NewClient(amqpClient,
		rabbitmq.WithLogger(logger),
		rabbitmq.WithLedgerEventExchange(c.RabbitMQLedgerEventExchange),
	)
	if err != nil {
		logger.Fatal(err)
	}
	// close the connection gently at the end of the runtime
	defer rabbitmqClient.Close()

	svc := &service.CommunityhubService{
		Config:         c,
		DB:             dbConn,
		Logger:         logger,
		RabbitMQClient: rabbitmqClient,
		EventPubSub:    service.NewPubsub(),
	}

	if os.Getenv("DRY_RUN") == "true" {
		events, err := svc.ListEvents(context.Background(), fromID-1, service.MaxEventPageSize)
		if err != nil {
			logger.Fatal(err)
		}
		for _, event := range events {
			if toID > 0 && event.ID > toID {
				break
			}
			logger.Infof("Would publish event id:%d type:%s", event.ID, event.Type)
		}
		return
	}

	count, err := svc.RepublishEvents(context.Background(), fromID, toID)
	if err != nil {
		sentry.CaptureException(err)
		logger.Errorf("Republishing stopped after %d events: %v", count, err)
		return
	}
	logger.Infof("Republished %d events", count)
}

func loadIdRangeFromEnv() (from, to int64, err error) {
	from, err = strconv.ParseInt(os.Getenv("FROM_ID"), 10, 64)
	if err != nil {
		return
	}
	if os.Getenv("TO_ID") == "" {
		return
	}
	to, err = strconv.ParseInt(os.Getenv("TO_ID"), 10, 64)
	return
}
