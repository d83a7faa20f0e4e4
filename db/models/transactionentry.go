package models

import (
	"time"
)

const (
	EntryTypeContribution  = "contribution"
	EntryTypePayout        = "payout"
	EntryTypeSurplusRefund = "surplus_refund"
)

// TransactionEntry : Transaction Entries Model
type TransactionEntry struct {
	ID                 int64             `bun:",pk,autoincrement"`
	CommunityPaymentID int64             `bun:",notnull"`
	CommunityPayment   *CommunityPayment `bun:"rel:belongs-to,join:community_payment_id=id"`
	Identity           string            `bun:",notnull"`
	CreditAccountID    int64             `bun:",notnull"`
	CreditAccount      *Account          `bun:"rel:belongs-to,join:credit_account_id=id"`
	DebitAccountID     int64             `bun:",notnull"`
	DebitAccount       *Account          `bun:"rel:belongs-to,join:debit_account_id=id"`
	Amount             int64             `bun:",notnull"`
	EntryType          string            `bun:",notnull"`
	// Reference is an optional external id of a contribution, unique when set.
	Reference string    `bun:",nullzero,unique"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
