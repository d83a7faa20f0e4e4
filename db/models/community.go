package models

import "time"

// Community : Community Model
// ID is assigned from the communities sequence, not by the database.
type Community struct {
	ID            int64     `json:"id" bun:",pk"`
	Name          string    `json:"name" bun:",notnull"`
	PayoutAddress string    `json:"payout_address" bun:",notnull"`
	Owner         string    `json:"owner" bun:",notnull"`
	NextPaymentID int64     `json:"-" bun:",notnull,default:0"`
	CreatedAt     time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
