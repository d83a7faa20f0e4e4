package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/uptrace/bun"
)

func (svc *CommunityhubService) CreateCommunity(ctx context.Context, name, payoutAddress, caller string) (*models.Community, error) {
	if name == "" || (svc.Config.MaxNameLength > 0 && len(name) > svc.Config.MaxNameLength) {
		return nil, ErrInvalidName
	}
	if payoutAddress == "" || caller == "" {
		return nil, ErrInvalidAddress
	}

	community := &models.Community{
		Name:          name,
		PayoutAddress: payoutAddress,
		Owner:         caller,
		CreatedAt:     time.Now(),
	}
	event := &models.LedgerEvent{
		Type:          common.EventTypeCommunityCreate,
		Name:          name,
		PayoutAddress: payoutAddress,
		Identity:      caller,
		CreatedAt:     community.CreatedAt,
	}

	// The id counter and the insert share one transaction so ids are never skipped or reused
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		id, err := nextSequenceValue(ctx, tx, common.SequenceCommunities)
		if err != nil {
			return err
		}
		community.ID = id
		event.CommunityID = id
		if _, err := tx.NewInsert().Model(community).Exec(ctx); err != nil {
			return err
		}
		return svc.appendEvents(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Infof("Community created: community_id:%d owner:%s payout_address:%s", community.ID, community.Owner, community.PayoutAddress)
	svc.publishEvents(event)
	return community, nil
}

func (svc *CommunityhubService) FindCommunity(ctx context.Context, communityID int64) (*models.Community, error) {
	var community models.Community

	err := svc.DB.NewSelect().Model(&community).Where("id = ?", communityID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("community %d: %w", communityID, ErrNotFound)
		}
		return nil, err
	}
	return &community, nil
}

func (svc *CommunityhubService) CommunitiesFor(ctx context.Context, owner string) ([]models.Community, error) {
	communities := []models.Community{}
	err := svc.DB.NewSelect().Model(&communities).Where("owner = ?", owner).OrderExpr("id ASC").Limit(100).Scan(ctx)
	return communities, err
}

// nextSequenceValue allocates the next value of a named counter inside tx.
// The update comes first so the counter row stays locked until commit.
func nextSequenceValue(ctx context.Context, tx bun.Tx, name string) (int64, error) {
	res, err := tx.NewUpdate().Model((*models.Sequence)(nil)).Set("value = value + 1").Where("name = ?", name).Exec(ctx)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err != nil || n != 1 {
		return 0, fmt.Errorf("sequence %s is not initialized", name)
	}
	seq := models.Sequence{}
	if err := tx.NewSelect().Model(&seq).Where("name = ?", name).Limit(1).Scan(ctx); err != nil {
		return 0, err
	}
	return seq.Value - 1, nil
}
