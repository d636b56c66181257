package services

import (
	"context"

	"ledgerbook/internal/core"
)

// Storage ports consumed by the registry, ledger and reporting engine.
// Services depend on these interfaces, not on the concrete SQLite repository.
//
//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks -source=ports.go
type (
	ClientStore interface {
		CreateClient(ctx context.Context, c core.Client) (int64, error)
		GetClient(ctx context.Context, id int64) (*core.Client, error)
		ListClients(ctx context.Context) ([]core.Client, error)
		UpdateClient(ctx context.Context, c core.Client) error
		DeleteClient(ctx context.Context, id int64) error
		CountClientTransactions(ctx context.Context, id int64) (int64, error)
	}

	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
		GetTransaction(ctx context.Context, id int64) (*core.Transaction, error)
		UpdateTransaction(ctx context.Context, t core.Transaction) error
		DeleteTransaction(ctx context.Context, id int64) error
	}

	// ReportStore returns flat, date-ascending joined rows; the reporting
	// engine does the grouping.
	ReportStore interface {
		TransactionsForYear(ctx context.Context, year int) ([]core.ReportRow, error)
		TransactionsForMonth(ctx context.Context, year, month int) ([]core.ReportRow, error)
	}
)
