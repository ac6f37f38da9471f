package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	TransferCompleted = "transfer.completed"
)

// Stream names
const (
	AccountEventsStream  = "account.events"
	TransferEventsStream = "transfer.events"
)

// Account events
type AccountCreatedEvent struct {
	AccountID uuid.UUID       `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
}

type AccountUpdatedEvent struct {
	AccountID  uuid.UUID       `json:"accountId"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

type AccountDeletedEvent struct {
	AccountID uuid.UUID `json:"accountId"`
}

// Transfer events
type TransferCompletedEvent struct {
	TransactionID   uuid.UUID       `json:"transactionId"`
	SourceAccountID uuid.UUID       `json:"sourceAccountId"`
	TargetAccountID uuid.UUID       `json:"targetAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}
