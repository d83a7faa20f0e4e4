package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

type ContributionRequest struct {
	CommunityID int64
	PaymentID   int64
	Amount      int64
	Contributor string
	// Reference optionally identifies the contribution at its source, a second
	// contribution with the same reference is rejected.
	Reference string
}

func (svc *CommunityhubService) CreateCommunityPayment(ctx context.Context, communityID, targetAmount int64, caller string) (*models.CommunityPayment, error) {
	if targetAmount <= 0 || (svc.Config.MaxTargetAmount > 0 && targetAmount > svc.Config.MaxTargetAmount) {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	payment := &models.CommunityPayment{
		CommunityID:  communityID,
		TargetAmount: targetAmount,
		CreatedAt:    now,
	}
	event := &models.LedgerEvent{
		Type:        common.EventTypeCommunityPaymentCreate,
		CommunityID: communityID,
		Identity:    caller,
		Amount:      targetAmount,
		CreatedAt:   now,
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		community := models.Community{}
		err := tx.NewSelect().Model(&community).Where("id = ?", communityID).Limit(1).Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("community %d: %w", communityID, ErrNotFound)
			}
			return err
		}
		if community.Owner != caller {
			return ErrUnauthorized
		}

		// next_payment_id is the per community counter, the update locks the community row
		_, err = tx.NewUpdate().Model((*models.Community)(nil)).
			Set("next_payment_id = next_payment_id + 1").
			Where("id = ?", communityID).
			Exec(ctx)
		if err != nil {
			return err
		}
		var next int64
		err = tx.NewSelect().Model((*models.Community)(nil)).Column("next_payment_id").Where("id = ?", communityID).Scan(ctx, &next)
		if err != nil {
			return err
		}
		payment.PaymentID = next - 1
		paymentID := payment.PaymentID
		event.PaymentID = &paymentID

		if _, err := tx.NewInsert().Model(payment).Exec(ctx); err != nil {
			return err
		}
		return svc.appendEvents(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Infof("Community payment created: community_id:%d payment_id:%d target_amount:%d", payment.CommunityID, payment.PaymentID, payment.TargetAmount)
	svc.publishEvents(event)
	return payment, nil
}

func (svc *CommunityhubService) GetCommunityPayment(ctx context.Context, communityID, paymentID int64) (*models.CommunityPayment, error) {
	payment := models.CommunityPayment{}
	err := svc.DB.NewSelect().Model(&payment).
		Where("community_id = ? AND payment_id = ?", communityID, paymentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("community payment %d/%d: %w", communityID, paymentID, ErrNotFound)
		}
		return nil, err
	}
	return &payment, nil
}

func (svc *CommunityhubService) CommunityPaymentsFor(ctx context.Context, communityID int64) ([]models.CommunityPayment, error) {
	payments := []models.CommunityPayment{}
	err := svc.DB.NewSelect().Model(&payments).Where("community_id = ?", communityID).OrderExpr("payment_id ASC").Scan(ctx)
	return payments, err
}

func (svc *CommunityhubService) MakePayment(ctx context.Context, communityID, paymentID, amount int64, caller string) (*models.CommunityPayment, error) {
	return svc.Contribute(ctx, ContributionRequest{
		CommunityID: communityID,
		PaymentID:   paymentID,
		Amount:      amount,
		Contributor: caller,
	})
}

// Contribute adds a contribution to a payment request. The contribution that
// first reaches the target completes the request and pays the target amount
// out to the community, all in the same transaction.
func (svc *CommunityhubService) Contribute(ctx context.Context, req ContributionRequest) (*models.CommunityPayment, error) {
	if req.Amount <= 0 || (svc.Config.MaxContributionAmount > 0 && req.Amount > svc.Config.MaxContributionAmount) {
		return nil, ErrInvalidAmount
	}
	if req.Contributor == "" {
		return nil, ErrInvalidAddress
	}

	var events []*models.LedgerEvent
	payment := &models.CommunityPayment{}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		events = events[:0]
		now := time.Now()

		// the guarded update locks the request row: every other contribution to
		// the same request waits here until this transaction ends
		res, err := tx.NewUpdate().Model((*models.CommunityPayment)(nil)).
			Set("accumulated_amount = accumulated_amount + ?", req.Amount).
			Set("updated_at = ?", now).
			Where("community_id = ? AND payment_id = ?", req.CommunityID, req.PaymentID).
			Where("is_complete = ?", false).
			// the sum has to fit into an int64
			Where("accumulated_amount <= ?", int64(math.MaxInt64)-req.Amount).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			current := models.CommunityPayment{}
			err := tx.NewSelect().Model(&current).
				Where("community_id = ? AND payment_id = ?", req.CommunityID, req.PaymentID).
				Limit(1).
				Scan(ctx)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("community payment %d/%d: %w", req.CommunityID, req.PaymentID, ErrNotFound)
			}
			if err != nil {
				return err
			}
			if current.IsComplete {
				return fmt.Errorf("community payment %d/%d: %w", req.CommunityID, req.PaymentID, ErrAlreadyComplete)
			}
			return fmt.Errorf("community payment %d/%d: contribution of %d overflows accumulated amount %d: %w", req.CommunityID, req.PaymentID, req.Amount, current.AccumulatedAmount, ErrInvalidAmount)
		}

		err = tx.NewSelect().Model(payment).
			Relation("Community").
			Where("community_payment.community_id = ? AND community_payment.payment_id = ?", req.CommunityID, req.PaymentID).
			Limit(1).
			Scan(ctx)
		if err != nil {
			return err
		}

		escrowAccount, err := svc.accountFor(ctx, tx, common.AccountTypeEscrow, common.EscrowIdentity(req.CommunityID, req.PaymentID))
		if err != nil {
			return err
		}
		incomingAccount, err := svc.accountFor(ctx, tx, common.AccountTypeIncoming, req.Contributor)
		if err != nil {
			return err
		}
		contribution := models.TransactionEntry{
			CommunityPaymentID: payment.ID,
			Identity:           req.Contributor,
			CreditAccountID:    escrowAccount.ID,
			DebitAccountID:     incomingAccount.ID,
			Amount:             req.Amount,
			EntryType:          models.EntryTypeContribution,
			Reference:          req.Reference,
			CreatedAt:          now,
		}
		if _, err := tx.NewInsert().Model(&contribution).Exec(ctx); err != nil {
			if req.Reference != "" && isUniqueViolation(err) {
				return fmt.Errorf("reference %s: %w", req.Reference, ErrDuplicateContribution)
			}
			return err
		}
		paymentID := req.PaymentID
		events = append(events, &models.LedgerEvent{
			Type:        common.EventTypeCommunityPaymentSent,
			CommunityID: req.CommunityID,
			PaymentID:   &paymentID,
			Identity:    req.Contributor,
			Amount:      req.Amount,
			CreatedAt:   now,
		})

		if payment.AccumulatedAmount < payment.TargetAmount {
			return svc.appendEvents(ctx, tx, events...)
		}

		completionEvents, err := svc.completePayment(ctx, tx, payment, escrowAccount, req.Contributor, now)
		if err != nil {
			return err
		}
		events = append(events, completionEvents...)
		return svc.appendEvents(ctx, tx, events...)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Infof("Contribution accepted: community_id:%d payment_id:%d amount:%d contributor:%s accumulated:%d", req.CommunityID, req.PaymentID, req.Amount, req.Contributor, payment.AccumulatedAmount)
	if payment.IsComplete {
		svc.Logger.Infof("Community payment complete: community_id:%d payment_id:%d payout:%d payout_address:%s surplus_refunded:%d", req.CommunityID, req.PaymentID, payment.TargetAmount, payment.Community.PayoutAddress, payment.SurplusRefunded)
	}
	svc.publishEvents(events...)
	return payment, nil
}

// completePayment marks the request complete, moves the target amount from escrow
// to the payout address and refunds any surplus to the final contributor.
func (svc *CommunityhubService) completePayment(ctx context.Context, tx bun.Tx, payment *models.CommunityPayment, escrowAccount models.Account, contributor string, now time.Time) ([]*models.LedgerEvent, error) {
	payment.IsComplete = true
	payment.FinalContributor = contributor
	payment.SurplusRefunded = payment.AccumulatedAmount - payment.TargetAmount
	payment.CompletedAt = bun.NullTime{Time: now}

	res, err := tx.NewUpdate().Model(payment).
		Column("is_complete", "final_contributor", "surplus_refunded", "completed_at", "updated_at").
		WherePK().
		Where("is_complete = ?", false).
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n != 1 {
		return nil, fmt.Errorf("community payment %d/%d: %w", payment.CommunityID, payment.PaymentID, ErrAlreadyComplete)
	}

	payoutAccount, err := svc.accountFor(ctx, tx, common.AccountTypeCurrent, payment.Community.PayoutAddress)
	if err != nil {
		return nil, err
	}
	payout := models.TransactionEntry{
		CommunityPaymentID: payment.ID,
		Identity:           payment.Community.PayoutAddress,
		CreditAccountID:    payoutAccount.ID,
		DebitAccountID:     escrowAccount.ID,
		Amount:             payment.TargetAmount,
		EntryType:          models.EntryTypePayout,
		CreatedAt:          now,
	}
	if _, err := tx.NewInsert().Model(&payout).Exec(ctx); err != nil {
		return nil, err
	}
	paymentID := payment.PaymentID
	events := []*models.LedgerEvent{{
		Type:          common.EventTypeCommunityPaymentTotal,
		CommunityID:   payment.CommunityID,
		PaymentID:     &paymentID,
		PayoutAddress: payment.Community.PayoutAddress,
		Identity:      contributor,
		Amount:        payment.TargetAmount,
		CreatedAt:     now,
	}}

	if payment.SurplusRefunded == 0 {
		return events, nil
	}
	refundAccount, err := svc.accountFor(ctx, tx, common.AccountTypeCurrent, contributor)
	if err != nil {
		return nil, err
	}
	refund := models.TransactionEntry{
		CommunityPaymentID: payment.ID,
		Identity:           contributor,
		CreditAccountID:    refundAccount.ID,
		DebitAccountID:     escrowAccount.ID,
		Amount:             payment.SurplusRefunded,
		EntryType:          models.EntryTypeSurplusRefund,
		CreatedAt:          now,
	}
	if _, err := tx.NewInsert().Model(&refund).Exec(ctx); err != nil {
		return nil, err
	}
	events = append(events, &models.LedgerEvent{
		Type:        common.EventTypeCommunityPaymentRefund,
		CommunityID: payment.CommunityID,
		PaymentID:   &paymentID,
		Identity:    contributor,
		Amount:      payment.SurplusRefunded,
		CreatedAt:   now,
	})
	return events, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
