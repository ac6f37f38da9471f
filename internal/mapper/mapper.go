// Package mapper converts between persisted entities and the transfer-facing
// view types. Conversions are pure; any field missing on the destination side
// is dropped, which is the deliberate contract the service relies on.
package mapper

import (
	"github.com/mitropoulosg/money-transfer-api/internal/models"
)

// AccountToView projects an account entity onto its view. Currency and
// CreatedAt have no view-side counterpart and are dropped.
func AccountToView(a *models.Account) *models.AccountView {
	return &models.AccountView{
		ID:      a.ID,
		Balance: a.Balance,
		Version: a.Version,
	}
}

// AccountsToViews projects a slice of entities, preserving storage order.
func AccountsToViews(accounts []models.Account) []models.AccountView {
	views := make([]models.AccountView, len(accounts))
	for i := range accounts {
		views[i] = *AccountToView(&accounts[i])
	}
	return views
}

// TransferToTransaction builds the ledger record for a transfer command.
// The transaction id and version are assigned by the service and store.
func TransferToTransaction(cmd models.TransferCommand) *models.Transaction {
	return &models.Transaction{
		SourceAccountID: cmd.SourceAccountID,
		TargetAccountID: cmd.TargetAccountID,
		Amount:          cmd.Amount,
		Currency:        cmd.Currency,
	}
}
