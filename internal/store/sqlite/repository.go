// Package sqlite is the local-storage adapter: transactions persisted
// in a SQLite database file, for deployments with no remote backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"finanzas/internal/core"
	"finanzas/internal/store"
)

type Repository struct {
	db *sql.DB
}

var _ store.TransactionStore = (*Repository)(nil)

// New opens (creating if needed) the database at dbPath and runs
// migrations.
func New(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", store.ErrUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", store.ErrUnavailable, err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, type, amount, description, date FROM transactions ORDER BY date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %v", store.ErrUnavailable, err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx           core.Transaction
			amount, date string
		)
		if err := rows.Scan(&tx.ID, &tx.Type, &amount, &tx.Description, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", amount, err)
		}
		tx.Date, err = core.ParseISO(date)
		if err != nil {
			return nil, fmt.Errorf("stored date %q: %w", date, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", store.ErrUnavailable, err)
	}
	return txs, nil
}

func (r *Repository) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("%w: %v", store.ErrWrite, err)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, amount, description, date) VALUES (?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Type), tx.Amount.String(), tx.Description, tx.Date.ISO())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("%w: insert transaction: %v", store.ErrWrite, err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", string(tx.Type),
		"amount", tx.Amount.String(),
		"date", tx.Date.ISO())

	return tx, nil
}

func (r *Repository) Remove(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete transaction: %v", store.ErrWrite, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) RemoveAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("%w: delete all transactions: %v", store.ErrWrite, err)
	}
	return nil
}

// Count reports how many transactions are stored. Used by the import
// CLI for its summary line.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count transactions: %v", store.ErrUnavailable, err)
	}
	return n, nil
}
