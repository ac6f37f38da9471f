package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// EnsureSchema creates the accounts and transactions tables if they do not
// exist yet. Balances are NUMERIC so decimal amounts round-trip exactly.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			balance NUMERIC(19,4) NOT NULL,
			currency TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			version INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY,
			source_account_id UUID NOT NULL,
			target_account_id UUID NOT NULL,
			amount NUMERIC(19,4) NOT NULL,
			currency TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
