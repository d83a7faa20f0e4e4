package service

import (
	"context"
	"fmt"

	"github.com/getAlby/communityhub.go/db/models"
)

type ReconciliationIssue struct {
	CommunityID int64
	PaymentID   int64
	Problem     string
}

func (issue ReconciliationIssue) String() string {
	return fmt.Sprintf("community_id:%d payment_id:%d %s", issue.CommunityID, issue.PaymentID, issue.Problem)
}

type entryTotals struct {
	CommunityPaymentID int64  `bun:"community_payment_id"`
	EntryType          string `bun:"entry_type"`
	Total              int64  `bun:"total"`
	Count              int64  `bun:"count"`
}

// ReconcileCommunityPayments checks every payment request against its ledger entries.
// A complete request must have paid out its target exactly once and left nothing in escrow.
func (svc *CommunityhubService) ReconcileCommunityPayments(ctx context.Context) ([]ReconciliationIssue, error) {
	payments := []models.CommunityPayment{}
	if err := svc.DB.NewSelect().Model(&payments).OrderExpr("community_id ASC, payment_id ASC").Scan(ctx); err != nil {
		return nil, err
	}

	totals := []entryTotals{}
	err := svc.DB.NewSelect().Model((*models.TransactionEntry)(nil)).
		ColumnExpr("community_payment_id, entry_type").
		ColumnExpr("COALESCE(SUM(amount), 0) AS total").
		ColumnExpr("COUNT(*) AS count").
		Group("community_payment_id", "entry_type").
		Scan(ctx, &totals)
	if err != nil {
		return nil, err
	}
	byPayment := map[int64]map[string]entryTotals{}
	for _, t := range totals {
		if byPayment[t.CommunityPaymentID] == nil {
			byPayment[t.CommunityPaymentID] = map[string]entryTotals{}
		}
		byPayment[t.CommunityPaymentID][t.EntryType] = t
	}

	issues := []ReconciliationIssue{}
	for _, payment := range payments {
		issue := func(format string, args ...interface{}) {
			issues = append(issues, ReconciliationIssue{
				CommunityID: payment.CommunityID,
				PaymentID:   payment.PaymentID,
				Problem:     fmt.Sprintf(format, args...),
			})
		}
		entries := byPayment[payment.ID]
		contributions := entries[models.EntryTypeContribution]
		payout := entries[models.EntryTypePayout]
		refund := entries[models.EntryTypeSurplusRefund]

		if contributions.Total != payment.AccumulatedAmount {
			issue("contributions %d do not match accumulated amount %d", contributions.Total, payment.AccumulatedAmount)
		}
		escrow := contributions.Total - payout.Total - refund.Total
		if !payment.IsComplete {
			if payout.Count != 0 || refund.Count != 0 {
				issue("open payment request has %d payouts and %d refunds", payout.Count, refund.Count)
			}
			if payment.AccumulatedAmount >= payment.TargetAmount {
				issue("open payment request reached its target %d", payment.TargetAmount)
			}
			continue
		}
		if payout.Count != 1 || payout.Total != payment.TargetAmount {
			issue("expected one payout of %d, found %d payouts of %d", payment.TargetAmount, payout.Count, payout.Total)
		}
		if refund.Total != payment.SurplusRefunded {
			issue("refunded %d, recorded surplus %d", refund.Total, payment.SurplusRefunded)
		}
		if escrow != 0 {
			issue("escrow of complete payment request holds %d", escrow)
		}
	}
	return issues, nil
}
