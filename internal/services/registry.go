package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ledgerbook/internal/core"
)

// ClientRegistry implements client CRUD with write-time validation. A client
// cannot be deleted while transactions still reference it.
type ClientRegistry struct {
	store ClientStore
}

func NewClientRegistry(store ClientStore) *ClientRegistry {
	return &ClientRegistry{store: store}
}

// Add validates and persists a new client, returning the generated id.
func (r *ClientRegistry) Add(ctx context.Context, c core.Client) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	id, err := r.store.CreateClient(ctx, c)
	if err != nil {
		return 0, fmt.Errorf("add client: %w", err)
	}
	return id, nil
}

// Get returns the client with the given id, or core.ErrNotFound.
func (r *ClientRegistry) Get(ctx context.Context, id int64) (*core.Client, error) {
	return r.store.GetClient(ctx, id)
}

// List returns all clients, unordered.
func (r *ClientRegistry) List(ctx context.Context) ([]core.Client, error) {
	return r.store.ListClients(ctx)
}

// Update overwrites all mutable fields of an existing client. An unset or
// unknown id is a caller error, not an upsert.
func (r *ClientRegistry) Update(ctx context.Context, c core.Client) error {
	if c.ID == 0 {
		return &core.ValidationError{Field: "id", Reason: "required"}
	}
	if err := c.Validate(); err != nil {
		return err
	}

	err := r.store.UpdateClient(ctx, c)
	if errors.Is(err, core.ErrNotFound) {
		return &core.ValidationError{Field: "id", Reason: "unknown client"}
	}
	if err != nil {
		return fmt.Errorf("update client %d: %w", c.ID, err)
	}
	return nil
}

// HasDependentTransactions reports whether at least one transaction still
// references the client.
func (r *ClientRegistry) HasDependentTransactions(ctx context.Context, id int64) (bool, error) {
	count, err := r.store.CountClientTransactions(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check dependent transactions for client %d: %w", id, err)
	}
	return count > 0, nil
}

// Delete permanently removes a client. It refuses while transactions still
// reference the client; the removal is non-recoverable.
func (r *ClientRegistry) Delete(ctx context.Context, id int64) error {
	count, err := r.store.CountClientTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("check dependent transactions for client %d: %w", id, err)
	}
	if count > 0 {
		return &core.ConstraintError{
			Reason: fmt.Sprintf("client %d has %d dependent transactions", id, count),
		}
	}

	if err := r.store.DeleteClient(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete client %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Client removed from registry", "id", id)
	return nil
}
