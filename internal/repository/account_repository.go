package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the repositories can run
// standalone or inside a unit of work.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AccountRepository is the PostgreSQL account store. Balance mutations go
// through version-conditional updates so concurrent writers cannot overwrite
// each other silently.
type AccountRepository struct {
	db dbtx
}

func NewAccountRepository(db dbtx) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	query := `
		SELECT id, balance, currency, created_at, version
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Balance, &account.Currency,
		&account.CreatedAt, &account.Version,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	query := `
		SELECT id, balance, currency, created_at, version
		FROM accounts
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.ID, &account.Balance, &account.Currency,
			&account.CreatedAt, &account.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) Insert(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, balance, currency, created_at, version)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Balance, account.Currency,
		account.CreatedAt, account.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Update persists the balance conditionally on the version the account was
// read at. Zero rows affected means another writer got there first.
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2, version = version + 1
		WHERE id = $1 AND version = $3
	`
	result, err := r.db.ExecContext(ctx, query, account.ID, account.Balance, account.Version)
	if err != nil {
		if isSerializationFailure(err) {
			return ErrVersionConflict
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrVersionConflict
	}
	account.Version++
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, account *models.Account) error {
	query := `DELETE FROM accounts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, account.ID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
