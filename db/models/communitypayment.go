package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// CommunityPayment : Community payment request Model
type CommunityPayment struct {
	ID                int64        `json:"-" bun:",pk,autoincrement"`
	CommunityID       int64        `json:"community_id" bun:",notnull,unique:community_payment_key"`
	Community         *Community   `json:"-" bun:"rel:belongs-to,join:community_id=id"`
	PaymentID         int64        `json:"payment_id" bun:",notnull,unique:community_payment_key"`
	TargetAmount      int64        `json:"target_amount" bun:",notnull"`
	AccumulatedAmount int64        `json:"accumulated_amount" bun:",notnull,default:0"`
	IsComplete        bool         `json:"is_complete" bun:",notnull,default:false"`
	FinalContributor  string       `json:"final_contributor,omitempty" bun:",nullzero"`
	SurplusRefunded   int64        `json:"surplus_refunded" bun:",notnull,default:0"`
	CreatedAt         time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt         bun.NullTime `json:"updated_at"`
	CompletedAt       bun.NullTime `json:"completed_at"`
}

func (p *CommunityPayment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// Remaining is the amount still missing before the target is reached.
func (p *CommunityPayment) Remaining() int64 {
	if p.AccumulatedAmount >= p.TargetAmount {
		return 0
	}
	return p.TargetAmount - p.AccumulatedAmount
}

var _ bun.BeforeAppendModelHook = (*CommunityPayment)(nil)
