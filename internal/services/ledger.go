package services

import (
	"context"
	"errors"
	"fmt"

	"ledgerbook/internal/core"
)

// TransactionLedger implements transaction CRUD. It validates amounts and
// dates before any store mutation; referential integrity of client_id is
// enforced by the store's declared foreign key, not re-checked here.
type TransactionLedger struct {
	store     TransactionStore
	maxAmount float64
}

// NewTransactionLedger builds a ledger with the given amount ceiling.
// A non-positive ceiling falls back to the default bound.
func NewTransactionLedger(store TransactionStore, maxAmount float64) *TransactionLedger {
	if maxAmount <= 0 {
		maxAmount = core.DefaultMaxTransactionAmount
	}
	return &TransactionLedger{store: store, maxAmount: maxAmount}
}

// MaxAmount returns the configured transaction amount ceiling.
func (l *TransactionLedger) MaxAmount() float64 {
	return l.maxAmount
}

// Add validates and persists a new transaction, returning the generated id.
func (l *TransactionLedger) Add(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(l.maxAmount); err != nil {
		return 0, err
	}

	id, err := l.store.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}
	return id, nil
}

// Get returns the transaction with the given id, or core.ErrNotFound.
func (l *TransactionLedger) Get(ctx context.Context, id int64) (*core.Transaction, error) {
	return l.store.GetTransaction(ctx, id)
}

// Update overwrites an existing transaction after the same validation as Add.
// Updating a never-assigned id is a caller error, never a silent insert.
func (l *TransactionLedger) Update(ctx context.Context, t core.Transaction) error {
	if t.ID == 0 {
		return &core.ValidationError{Field: "id", Reason: "required"}
	}
	if err := t.Validate(l.maxAmount); err != nil {
		return err
	}

	err := l.store.UpdateTransaction(ctx, t)
	if errors.Is(err, core.ErrNotFound) {
		return &core.ValidationError{Field: "id", Reason: "unknown transaction"}
	}
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", t.ID, err)
	}
	return nil
}

// Delete removes a transaction unconditionally; the client it referenced is
// never affected.
func (l *TransactionLedger) Delete(ctx context.Context, id int64) error {
	if err := l.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}
