package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyGBP is the only currency the system supports. The field exists on
// both entities for forward extensibility; no logic branches on it.
const CurrencyGBP = "GBP"

// Account is the persisted account entity. Version is the optimistic-concurrency
// token: the repository increments it on every successful conditional update.
type Account struct {
	ID        uuid.UUID       `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdTimestamp"`
	Version   int             `json:"version"`
}

// Transaction is one immutable ledger record, created exactly once per
// successful transfer and never updated or deleted afterwards.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	SourceAccountID uuid.UUID       `json:"sourceAccountId"`
	TargetAccountID uuid.UUID       `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Version         int             `json:"version"`
}
