package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ledgerbook/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable store for clients and transactions. Every
// call is its own commit; no transaction spans multiple operations.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// SQLite supports a single writer; route everything through one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateClient implements services.ClientStore
func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients(name, phone_number, email, notes) VALUES(?, ?, ?, ?)`,
		c.Name, c.PhoneNumber, c.Email, c.Notes)
	if err != nil {
		return 0, &core.StoreError{Op: "create client", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &core.StoreError{Op: "create client", Err: err}
	}

	slog.InfoContext(ctx, "Client saved", "id", id, "name", c.Name)
	return id, nil
}

// GetClient implements services.ClientStore
func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (*core.Client, error) {
	var (
		c                   core.Client
		phone, email, notes sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone_number, email, notes FROM clients WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &phone, &email, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, &core.StoreError{Op: "get client", Err: err}
	}

	c.PhoneNumber, c.Email, c.Notes = phone.String, email.String, notes.String
	return &c, nil
}

// ListClients implements services.ClientStore
func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone_number, email, notes FROM clients`)
	if err != nil {
		return nil, &core.StoreError{Op: "list clients", Err: err}
	}
	defer rows.Close()

	var out []core.Client
	for rows.Next() {
		var (
			c                   core.Client
			phone, email, notes sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &phone, &email, &notes); err != nil {
			return nil, &core.StoreError{Op: "scan client", Err: err}
		}
		c.PhoneNumber, c.Email, c.Notes = phone.String, email.String, notes.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "list clients", Err: err}
	}
	return out, nil
}

// UpdateClient implements services.ClientStore
func (r *SQLiteRepository) UpdateClient(ctx context.Context, c core.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, phone_number = ?, email = ?, notes = ? WHERE id = ?`,
		c.Name, c.PhoneNumber, c.Email, c.Notes, c.ID)
	if err != nil {
		return &core.StoreError{Op: "update client", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &core.StoreError{Op: "update client", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Client updated", "id", c.ID)
	return nil
}

// DeleteClient implements services.ClientStore
func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return &core.StoreError{Op: "delete client", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &core.StoreError{Op: "delete client", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Client deleted", "id", id)
	return nil
}

// CountClientTransactions implements services.ClientStore
func (r *SQLiteRepository) CountClientTransactions(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE client_id = ?`, id).Scan(&count)
	if err != nil {
		return 0, &core.StoreError{Op: "count client transactions", Err: err}
	}
	return count, nil
}

// CreateTransaction implements services.TransactionStore
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions(client_id, amount, date, description) VALUES(?, ?, ?, ?)`,
		t.ClientID, t.Amount, t.Date, t.Description)
	if err != nil {
		return 0, &core.StoreError{Op: "create transaction", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &core.StoreError{Op: "create transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"client_id", t.ClientID,
		"amount", t.Amount,
		"date", t.Date)
	return id, nil
}

// GetTransaction implements services.TransactionStore
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (*core.Transaction, error) {
	var (
		t    core.Transaction
		desc sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, client_id, amount, date, description FROM transactions WHERE id = ?`, id).
		Scan(&t.ID, &t.ClientID, &t.Amount, &t.Date, &desc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, &core.StoreError{Op: "get transaction", Err: err}
	}

	t.Description = desc.String
	return &t, nil
}

// UpdateTransaction implements services.TransactionStore
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET client_id = ?, amount = ?, date = ?, description = ? WHERE id = ?`,
		t.ClientID, t.Amount, t.Date, t.Description, t.ID)
	if err != nil {
		return &core.StoreError{Op: "update transaction", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return &core.StoreError{Op: "update transaction", Err: err}
	}
	if n == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID)
	return nil
}

// DeleteTransaction implements services.TransactionStore. Removal is
// unconditional: deleting a transaction never affects its client, and
// deleting an absent id is not an error.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return &core.StoreError{Op: "delete transaction", Err: err}
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// TransactionsForYear implements services.ReportStore. Rows come back
// ascending by date with the client name left-joined in, so transactions
// whose client row is gone still appear (with a NULL name).
func (r *SQLiteRepository) TransactionsForYear(ctx context.Context, year int) ([]core.ReportRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.date, t.id, t.client_id, t.amount, t.description, c.name
		 FROM transactions t
		 LEFT JOIN clients c ON t.client_id = c.id
		 WHERE strftime('%Y', t.date) = ?
		 ORDER BY t.date`,
		fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, &core.StoreError{Op: "transactions for year", Err: err}
	}
	defer rows.Close()

	return scanReportRows(rows)
}

// TransactionsForMonth implements services.ReportStore
func (r *SQLiteRepository) TransactionsForMonth(ctx context.Context, year, month int) ([]core.ReportRow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.date, t.id, t.client_id, t.amount, t.description, c.name
		 FROM transactions t
		 LEFT JOIN clients c ON t.client_id = c.id
		 WHERE strftime('%Y', t.date) = ? AND strftime('%m', t.date) = ?
		 ORDER BY t.date`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, &core.StoreError{Op: "transactions for month", Err: err}
	}
	defer rows.Close()

	return scanReportRows(rows)
}

func scanReportRows(rows *sql.Rows) ([]core.ReportRow, error) {
	var out []core.ReportRow
	for rows.Next() {
		var (
			row        core.ReportRow
			desc, name sql.NullString
		)
		if err := rows.Scan(&row.Date, &row.ID, &row.ClientID, &row.Amount, &desc, &name); err != nil {
			return nil, &core.StoreError{Op: "scan report row", Err: err}
		}
		row.Description = desc.String
		if name.Valid {
			row.ClientName = &name.String
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &core.StoreError{Op: "iterate report rows", Err: err}
	}
	return out, nil
}
