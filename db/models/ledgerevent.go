package models

import "time"

// LedgerEvent : append-only event log entry.
// Identity carries the owner, contributor or final contributor depending on Type.
type LedgerEvent struct {
	ID            int64     `json:"id" bun:",pk,autoincrement"`
	Type          string    `json:"type" bun:",notnull"`
	CommunityID   int64     `json:"community_id" bun:",notnull"`
	PaymentID     *int64    `json:"payment_id,omitempty"`
	Name          string    `json:"name,omitempty" bun:",nullzero"`
	PayoutAddress string    `json:"payout_address,omitempty" bun:",nullzero"`
	Identity      string    `json:"identity" bun:",notnull"`
	Amount        int64     `json:"amount" bun:",notnull,default:0"`
	CreatedAt     time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
