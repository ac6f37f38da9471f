package repository

import (
	"context"
	"fmt"

	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

// TransactionRepository is the PostgreSQL ledger store. Records are only ever
// inserted; nothing in this codebase updates or deletes them.
type TransactionRepository struct {
	db dbtx
}

func NewTransactionRepository(db dbtx) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Insert(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, source_account_id, target_account_id, amount, currency, version)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.SourceAccountID, transaction.TargetAccountID,
		transaction.Amount, transaction.Currency, transaction.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}
