package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrVersionConflict is returned when a conditional write finds that the
	// row's version no longer matches the version that was read.
	ErrVersionConflict = errors.New("version conflict")
)

// isSerializationFailure reports whether err is a Postgres transaction
// rollback (SQLSTATE class 40). Under REPEATABLE READ the loser of a
// concurrent update race gets 40001 from the server instead of a zero-rows
// result, so class 40 is the same lost race as a failed version check.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "40"
}

// AccountStore is durable keyed storage for account records.
type AccountStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error)
	FindAll(ctx context.Context) ([]models.Account, error)
	Insert(ctx context.Context, account *models.Account) error
	// Update writes the account conditionally on the version it was read at
	// and bumps account.Version on success.
	Update(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, account *models.Account) error
}

// TransactionStore is append-only storage for the ledger log.
type TransactionStore interface {
	Insert(ctx context.Context, transaction *models.Transaction) error
}

// StoreTx groups the stores bound to one open database transaction.
type StoreTx interface {
	Accounts() AccountStore
	Transactions() TransactionStore
}

// UnitOfWork runs a function against the stores inside a single database
// transaction: every store call made through the StoreTx commits or rolls
// back together.
type UnitOfWork interface {
	ReadCommitted(ctx context.Context, fn func(tx StoreTx) error) error
	// RepeatableRead is used by the transfer path, where the balance check
	// and both conditional writes must observe a consistent snapshot.
	RepeatableRead(ctx context.Context, fn func(tx StoreTx) error) error
}
