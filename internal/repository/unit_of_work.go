package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLUnitOfWork implements UnitOfWork over database/sql transactions. The
// function passed to Run sees repositories bound to one open *sql.Tx; the
// transaction commits only if the function returns nil.
type SQLUnitOfWork struct {
	db *sql.DB
}

func NewSQLUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{db: db}
}

func (u *SQLUnitOfWork) ReadCommitted(ctx context.Context, fn func(tx StoreTx) error) error {
	return u.run(ctx, sql.LevelReadCommitted, fn)
}

func (u *SQLUnitOfWork) RepeatableRead(ctx context.Context, fn func(tx StoreTx) error) error {
	return u.run(ctx, sql.LevelRepeatableRead, fn)
}

func (u *SQLUnitOfWork) run(ctx context.Context, level sql.IsolationLevel, fn func(tx StoreTx) error) error {
	tx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: level})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// No-op after a successful commit; also releases the connection when fn
	// returns an error or panics.
	defer tx.Rollback()

	if err := fn(&sqlStoreTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		// REPEATABLE READ can defer the loss of an update race to commit.
		if isSerializationFailure(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type sqlStoreTx struct {
	tx *sql.Tx
}

func (s *sqlStoreTx) Accounts() AccountStore {
	return NewAccountRepository(s.tx)
}

func (s *sqlStoreTx) Transactions() TransactionStore {
	return NewTransactionRepository(s.tx)
}
