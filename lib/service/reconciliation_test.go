package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileCommunityPayments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createCommunityWithPayment(t, svc, 100)
	_, err := svc.CreateCommunityPayment(ctx, 0, 50, owner)
	require.NoError(t, err)

	_, err = svc.MakePayment(ctx, 0, 0, 80, alice)
	require.NoError(t, err)
	_, err = svc.MakePayment(ctx, 0, 0, 30, bob)
	require.NoError(t, err)
	_, err = svc.MakePayment(ctx, 0, 1, 10, bob)
	require.NoError(t, err)

	issues, err := svc.ReconcileCommunityPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues)

	// tamper with the stored state behind the ledger's back
	_, err = svc.DB.NewRaw("UPDATE community_payments SET accumulated_amount = 999 WHERE community_id = 0 AND payment_id = 1").Exec(ctx)
	require.NoError(t, err)

	issues, err = svc.ReconcileCommunityPayments(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, int64(1), issues[0].PaymentID)
	assert.Contains(t, issues[0].String(), "do not match accumulated amount")
	assert.Contains(t, issues[1].String(), "reached its target")
}
