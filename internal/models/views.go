package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountView is the transfer-facing projection of an account. Currency and
// CreatedAt exist only on the entity side and are dropped by the mapper.
type AccountView struct {
	ID      uuid.UUID       `json:"id"`
	Balance decimal.Decimal `json:"balance"`
	Version int             `json:"version"`
}

// TransferResult is returned to the boundary after a committed transfer.
// Amount echoes the requested amount; it is never recomputed.
type TransferResult struct {
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// TransferCommand carries a transfer request into the account service.
type TransferCommand struct {
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	Amount          decimal.Decimal
	Currency        string
}
