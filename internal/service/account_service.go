// Package service holds the account/transfer core: all balance mutations run
// inside a unit of work against the stores, and every failure surfaces as a
// typed apperrors value for the HTTP layer to map.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mitropoulosg/money-transfer-api/internal/apperrors"
	"github.com/mitropoulosg/money-transfer-api/internal/events"
	"github.com/mitropoulosg/money-transfer-api/internal/mapper"
	"github.com/mitropoulosg/money-transfer-api/internal/models"
	"github.com/mitropoulosg/money-transfer-api/internal/repository"
)

// StatusTransferSuccessful is echoed in every committed transfer result.
const StatusTransferSuccessful = "Transfer successful"

// EventPublisher is the post-commit notification sink. Publish failures are
// logged and never fail the operation that triggered them.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountService orchestrates account CRUD and money transfers. It keeps no
// account state between requests; the stores are the single source of truth.
type AccountService struct {
	uow       repository.UnitOfWork
	publisher EventPublisher
	logger    *zap.Logger
}

func NewAccountService(uow repository.UnitOfWork, publisher EventPublisher, logger *zap.Logger) *AccountService {
	return &AccountService{uow: uow, publisher: publisher, logger: logger}
}

// CreateAccount persists a new account with a fresh id, a server-assigned
// creation timestamp and version 0. Negative initial balances are accepted;
// the upstream contract only requires the balance to be present.
func (s *AccountService) CreateAccount(ctx context.Context, balance decimal.Decimal) (*models.AccountView, error) {
	account := &models.Account{
		ID:        uuid.New(),
		Balance:   balance,
		Currency:  models.CurrencyGBP,
		CreatedAt: time.Now().UTC(),
		Version:   0,
	}

	err := s.uow.ReadCommitted(ctx, func(tx repository.StoreTx) error {
		return tx.Accounts().Insert(ctx, account)
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID: account.ID,
		Balance:   account.Balance,
		Currency:  account.Currency,
	})
	return mapper.AccountToView(account), nil
}

// GetAllAccounts returns every account in storage order.
func (s *AccountService) GetAllAccounts(ctx context.Context) ([]models.AccountView, error) {
	var accounts []models.Account
	err := s.uow.ReadCommitted(ctx, func(tx repository.StoreTx) error {
		var err error
		accounts, err = tx.Accounts().FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return mapper.AccountsToViews(accounts), nil
}

// GetAccount returns the account with the given id.
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*models.AccountView, error) {
	var account *models.Account
	err := s.uow.ReadCommitted(ctx, func(tx repository.StoreTx) error {
		var err error
		account, err = tx.Accounts().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, classifyAccountError(err, "Account", id)
	}
	return mapper.AccountToView(account), nil
}

// UpdateAccount overwrites the account's balance. This is a blunt overwrite,
// not a delta; the store's version check still guards against lost updates.
func (s *AccountService) UpdateAccount(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	err := s.uow.ReadCommitted(ctx, func(tx repository.StoreTx) error {
		account, err := tx.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		account.Balance = balance
		return tx.Accounts().Update(ctx, account)
	})
	if err != nil {
		return classifyAccountError(err, "Account", id)
	}

	s.publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID:  id,
		NewBalance: balance,
	})
	return nil
}

// DeleteAccount permanently removes the account. Ledger records referencing
// it are left in place; the ledger is a historical log, not a foreign key.
func (s *AccountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	err := s.uow.ReadCommitted(ctx, func(tx repository.StoreTx) error {
		account, err := tx.Accounts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		return tx.Accounts().Delete(ctx, account)
	})
	if err != nil {
		return classifyAccountError(err, "Account", id)
	}

	s.publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{AccountID: id})
	return nil
}

// TransferMoney atomically moves cmd.Amount from the source account to the
// target account and appends a ledger record. Preconditions are checked in
// order and the first failure wins with no side effects: same-account check,
// source existence, target existence, sufficient balance. The whole mutation
// runs in one REPEATABLE READ transaction; a version conflict on either
// account aborts everything and surfaces as Conflict.
func (s *AccountService) TransferMoney(ctx context.Context, cmd models.TransferCommand) (*models.TransferResult, error) {
	if cmd.SourceAccountID == cmd.TargetAccountID {
		return nil, apperrors.BadRequest("Source and target account IDs cannot be the same.")
	}

	transaction := mapper.TransferToTransaction(cmd)
	transaction.ID = uuid.New()
	transaction.Currency = models.CurrencyGBP

	err := s.uow.RepeatableRead(ctx, func(tx repository.StoreTx) error {
		source, err := tx.Accounts().FindByID(ctx, cmd.SourceAccountID)
		if err != nil {
			return classifyAccountError(err, "Source Account", cmd.SourceAccountID)
		}
		target, err := tx.Accounts().FindByID(ctx, cmd.TargetAccountID)
		if err != nil {
			return classifyAccountError(err, "Target Account", cmd.TargetAccountID)
		}

		if source.Balance.LessThan(cmd.Amount) {
			return apperrors.BadRequest("Insufficient balance in the source account.")
		}

		source.Balance = source.Balance.Sub(cmd.Amount)
		target.Balance = target.Balance.Add(cmd.Amount)

		if err := tx.Accounts().Update(ctx, source); err != nil {
			return classifyAccountError(err, "Source Account", cmd.SourceAccountID)
		}
		if err := tx.Accounts().Update(ctx, target); err != nil {
			return classifyAccountError(err, "Target Account", cmd.TargetAccountID)
		}

		return tx.Transactions().Insert(ctx, transaction)
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		// A race lost at commit time cannot name the losing row; report the
		// source account, which every transfer mutates.
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apperrors.Conflict("Account", cmd.SourceAccountID.String())
		}
		return nil, apperrors.Internal(err)
	}

	s.publish(ctx, events.TransferEventsStream, events.TransferCompleted, events.TransferCompletedEvent{
		TransactionID:   transaction.ID,
		SourceAccountID: cmd.SourceAccountID,
		TargetAccountID: cmd.TargetAccountID,
		Amount:          cmd.Amount,
		Currency:        transaction.Currency,
	})

	return &models.TransferResult{
		Status: StatusTransferSuccessful,
		Amount: cmd.Amount,
	}, nil
}

func (s *AccountService) publish(ctx context.Context, stream, eventType string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, stream, eventType, data); err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("stream", stream),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

// classifyAccountError maps store sentinels onto the error taxonomy, naming
// the resource the way the boundary reports it.
func classifyAccountError(err error, resource string, id uuid.UUID) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource, id.String())
	case errors.Is(err, repository.ErrVersionConflict):
		return apperrors.Conflict(resource, id.String())
	default:
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Internal(err)
	}
}
