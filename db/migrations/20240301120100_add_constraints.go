package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// at most one payout per payment request, on every dialect
		if _, err := db.ExecContext(ctx, `
			CREATE UNIQUE INDEX IF NOT EXISTS transaction_entries_single_payout
			ON transaction_entries (community_payment_id)
			WHERE entry_type = 'payout'
		`); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS ledger_events_community_payment
			ON ledger_events (community_id, payment_id)
		`); err != nil {
			return err
		}

		if db.Dialect().Name() != dialect.PG {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level balance checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- make sure transfers happen from one account to another one
				ALTER TABLE transaction_entries
				ADD CONSTRAINT check_not_same_account
				CHECK (debit_account_id != credit_account_id);

			-- make sure amounts are positive
				ALTER TABLE transaction_entries
				ADD CONSTRAINT check_positive_amount
				CHECK (amount > 0);

			-- make sure that account balances >= 0 (except for incoming accounts)
				CREATE OR REPLACE FUNCTION check_balance()
					RETURNS TRIGGER AS $$
				DECLARE
					sum BIGINT;
					debit_account_type VARCHAR;
				BEGIN

					-- LOCK the debited account unless it is an incoming account.
					--  Escrow accounts are only debited while the payment request row is locked,
					--  so this never waits on a transaction of another request.
					SELECT INTO debit_account_type type
					FROM accounts
					WHERE id = NEW.debit_account_id AND type <> 'incoming'
					FOR UPDATE;

					IF debit_account_type IS NULL
					THEN
						RETURN NEW;
					END IF;

					SELECT INTO sum SUM(amount)
					FROM account_ledgers
					WHERE account_ledgers.account_id = NEW.debit_account_id;

					IF sum < 0
					THEN
						RAISE EXCEPTION 'invalid balance [identity:%] [debit_account_id:%] balance [%]',
						NEW.identity,
						NEW.debit_account_id,
						sum;
					END IF;
					RETURN NEW;
				END;
				$$ LANGUAGE plpgsql;

				DROP TRIGGER IF EXISTS check_balance ON transaction_entries;

				-- deferrable: the balance is checked at the end of the transaction for each inserted entry
				CREATE CONSTRAINT TRIGGER check_balance
				AFTER INSERT OR UPDATE ON transaction_entries
				DEFERRABLE INITIALLY DEFERRED
				FOR EACH ROW EXECUTE PROCEDURE check_balance();
		`
		if _, err := db.ExecContext(ctx, sql); err != nil {
			return err
		}
		return nil
	}, nil)
}
