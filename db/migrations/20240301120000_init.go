package migrations

import (
	"context"

	"github.com/getAlby/communityhub.go/common"
	"github.com/getAlby/communityhub.go/db/models"
	"github.com/uptrace/bun"
)

/* Since this init will reflect the latest model fields when run on fresh db
make sure that when you add/remove columns in subsequent migrations IfNotExists/IfExists is used
otherwise it's going to result in errors.
*/
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		tables := []interface{}{
			(*models.Sequence)(nil),
			(*models.Community)(nil),
			(*models.CommunityPayment)(nil),
			(*models.Account)(nil),
			(*models.TransactionEntry)(nil),
			(*models.LedgerEvent)(nil),
		}
		for _, model := range tables {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		seq := models.Sequence{Name: common.SequenceCommunities, Value: 0}
		if _, err := db.NewInsert().Model(&seq).On("CONFLICT (name) DO NOTHING").Exec(ctx); err != nil {
			return err
		}

		// the ledger view: credits count positive, debits negative
		if _, err := db.ExecContext(ctx, `
			CREATE VIEW account_ledgers(account_id, transaction_entry_id, amount) AS
				SELECT credit_account_id, id, amount FROM transaction_entries
				UNION ALL
				SELECT debit_account_id, id, (0 - amount) FROM transaction_entries
		`); err != nil {
			return err
		}
		return nil
	}, nil)
}
