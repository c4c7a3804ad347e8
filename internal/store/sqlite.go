package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// SQLite is a repository backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

const createTransactionsTableSQL = `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id TEXT NOT NULL,
	date TEXT NOT NULL,
	description TEXT NOT NULL,
	amount REAL NOT NULL CHECK (amount >= 0),
	type TEXT NOT NULL,
	frequency TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT ''
);`

const createTransactionsIndexSQL = `CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, date);`

// NewSQLite opens (creating if needed) the database at path. Use
// ":memory:" for a throwaway database.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{createTransactionsTableSQL, createTransactionsIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create transactions table: %w", err)
		}
	}
	return &SQLite{db: db}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, date, description, amount, type, frequency, category FROM transactions WHERE user_id = ? ORDER BY date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	result := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *SQLite) Create(ctx context.Context, userID string, txns []models.Transaction) (int, error) {
	valid, err := validateAll(txns)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (user_id, date, description, amount, type, frequency, category) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, t := range valid {
		if _, err := stmt.ExecContext(ctx, userID, t.Date.String(), t.Description, t.Amount, string(t.Type), string(t.Frequency), t.Category); err != nil {
			return 0, fmt.Errorf("failed to insert transaction: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(valid), nil
}

func (s *SQLite) Update(ctx context.Context, userID, id string, patch models.Patch) (models.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return models.Transaction{}, ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Transaction{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, date, description, amount, type, frequency, category FROM transactions WHERE user_id = ? AND id = ?`, userID, rowID)
	current, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrNotFound
	}
	if err != nil {
		return models.Transaction{}, err
	}

	updated := patch.Apply(current)
	_, err = tx.ExecContext(ctx,
		`UPDATE transactions SET date = ?, description = ?, amount = ?, type = ?, frequency = ? WHERE id = ?`,
		updated.Date.String(), updated.Description, updated.Amount, string(updated.Type), string(updated.Frequency), rowID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return updated, tx.Commit()
}

func (s *SQLite) Delete(ctx context.Context, userID, id string) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, rowID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		t        models.Transaction
		id       int64
		date     string
		typ      string
		freq     string
		category string
	)
	if err := row.Scan(&id, &date, &t.Description, &t.Amount, &typ, &freq, &category); err != nil {
		return models.Transaction{}, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return models.Transaction{}, err
	}
	t.ID = strconv.FormatInt(id, 10)
	t.Date = d
	t.Type = models.TxType(typ)
	t.Frequency = models.Frequency(freq)
	t.Category = category
	return t, nil
}
