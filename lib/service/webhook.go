package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/getAlby/communityhub.go/db/models"
)

func (svc *CommunityhubService) StartWebhookSubscription(ctx context.Context) {
	svc.Logger.Infof("Starting webhook subscription with webhook url %s", svc.Config.WebhookUrl)
	events, unsubscribe, err := svc.SubscribeLedgerEvents()
	if err != nil {
		svc.Logger.Error(err)
		return
	}
	defer unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			svc.postToWebhook(ctx, event)
		}
	}
}

func (svc *CommunityhubService) postToWebhook(ctx context.Context, event models.LedgerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		svc.Logger.Error(err)
		return
	}

	exponentialBackoff := backoff.NewExponentialBackOff()
	exponentialBackoff.MaxElapsedTime = time.Duration(svc.Config.WebhookMaxElapsedTime) * time.Second

	err = backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.Config.WebhookUrl, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(resp.Body)
			err = fmt.Errorf("webhook status code was %d, body: %s", resp.StatusCode, msg)
			// client errors will not go away by retrying
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}, backoff.WithContext(exponentialBackoff, ctx))
	if err != nil {
		svc.Logger.Errorf("Posting ledger event %d to webhook failed: %v", event.ID, err)
	}
}
