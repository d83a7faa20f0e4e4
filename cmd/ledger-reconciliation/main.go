package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/getAlby/communityhub.go/db"
	"github.com/getAlby/communityhub.go/lib/logging"
	"github.com/getAlby/communityhub.go/lib/service"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// script to audit the payment requests against their ledger entries
func main() {

	c := &service.Config{}

	// Load configruation from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configrued log file
	logger := logging.Logger(c.LogFilePath)

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

	svc := &service.CommunityhubService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	issues, err := svc.ReconcileCommunityPayments(ctx)
	if err != nil {
		sentry.CaptureException(err)
		logger.Fatal(err)
	}
	for _, issue := range issues {
		logger.Error(issue.String())
		sentry.CaptureMessage(issue.String())
	}
	logger.Infof("Reconciliation done, found %d issues", len(issues))
	sentry.Flush(2 * time.Second)
	if len(issues) > 0 {
		os.Exit(1)
	}
}
