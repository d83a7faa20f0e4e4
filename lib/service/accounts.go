package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/uptrace/bun"
)

// accountFor returns the account of identity, creating it on first use.
func (svc *CommunityhubService) accountFor(ctx context.Context, db bun.IDB, accountType, identity string) (models.Account, error) {
	account := models.Account{Identity: identity, Type: accountType}
	if _, err := db.NewInsert().Model(&account).On("CONFLICT (identity, type) DO NOTHING").Exec(ctx); err != nil {
		return account, err
	}
	account = models.Account{}
	err := db.NewSelect().Model(&account).Where("identity = ? AND type = ?", identity, accountType).Limit(1).Scan(ctx)
	return account, err
}

func (svc *CommunityhubService) AccountFor(ctx context.Context, accountType, identity string) (models.Account, error) {
	account := models.Account{}
	err := svc.DB.NewSelect().Model(&account).Where("identity = ? AND type = ?", identity, accountType).Limit(1).Scan(ctx)
	return account, err
}

func (svc *CommunityhubService) accountBalance(ctx context.Context, accountType, identity string) (int64, error) {
	var balance int64

	account, err := svc.AccountFor(ctx, accountType, identity)
	if err != nil {
		// an identity that never received anything has no account yet
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return balance, err
	}
	err = svc.DB.NewSelect().Table("account_ledgers").ColumnExpr("COALESCE(SUM(account_ledgers.amount), 0) AS balance").Where("account_ledgers.account_id = ?", account.ID).Scan(ctx, &balance)
	return balance, err
}

// CurrentBalance is the amount an identity has received as payouts and surplus refunds.
func (svc *CommunityhubService) CurrentBalance(ctx context.Context, identity string) (int64, error) {
	return svc.accountBalance(ctx, common.AccountTypeCurrent, identity)
}

// EscrowBalance is the value held for a payment request that has not been paid out yet.
func (svc *CommunityhubService) EscrowBalance(ctx context.Context, communityID, paymentID int64) (int64, error) {
	return svc.accountBalance(ctx, common.AccountTypeEscrow, common.EscrowIdentity(communityID, paymentID))
}

// TransactionEntriesFor lists the entries crediting or debiting any account of identity.
func (svc *CommunityhubService) TransactionEntriesFor(ctx context.Context, identity string) ([]models.TransactionEntry, error) {
	transactionEntries := []models.TransactionEntry{}
	err := svc.DB.NewSelect().Model(&transactionEntries).
		Relation("CreditAccount").
		Relation("DebitAccount").
		Where("credit_account.identity = ? OR debit_account.identity = ?", identity, identity).
		OrderExpr("transaction_entry.id ASC").
		Limit(1000).
		Scan(ctx)
	return transactionEntries, err
}

func (svc *CommunityhubService) PaymentTransactionEntries(ctx context.Context, communityID, paymentID int64) ([]models.TransactionEntry, error) {
	transactionEntries := []models.TransactionEntry{}
	err := svc.DB.NewSelect().Model(&transactionEntries).
		Join("JOIN community_payments AS cp ON cp.id = transaction_entry.community_payment_id").
		Where("cp.community_id = ? AND cp.payment_id = ?", communityID, paymentID).
		OrderExpr("transaction_entry.id ASC").
		Scan(ctx)
	return transactionEntries, err
}
