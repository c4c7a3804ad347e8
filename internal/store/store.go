// Package store holds the canonical transaction collection behind a small
// repository interface.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// ErrNotFound is returned when a transaction id does not exist for a user.
var ErrNotFound = errors.New("transaction not found")

// ErrInvalid wraps every validation failure of a transaction or patch.
var ErrInvalid = errors.New("invalid transaction")

// Repository is the transaction collection owned by a user.
type Repository interface {
	// List returns the user's transactions ordered by date, then id.
	List(ctx context.Context, userID string) ([]models.Transaction, error)
	// Create appends transactions, assigning fresh numeric ids, and
	// returns how many were saved.
	Create(ctx context.Context, userID string, txns []models.Transaction) (int, error)
	// Update applies an explicit edit and returns the updated transaction.
	Update(ctx context.Context, userID, id string, patch models.Patch) (models.Transaction, error)
	// Delete removes one transaction.
	Delete(ctx context.Context, userID, id string) error
}

// Open returns the repository a DSN names: "memory:", "jsonfile:/path" or
// "sqlite:/path".
func Open(dsn string) (Repository, error) {
	bits := strings.SplitN(dsn, ":", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("invalid store %q, expected [memory:] [jsonfile:/path/to/file.json] or [sqlite:/path/to/file.db]", dsn)
	}

	switch bits[0] {
	case "memory":
		return NewMemory(), nil
	case "jsonfile":
		return NewJSONFile(bits[1])
	case "sqlite":
		return NewSQLite(bits[1])
	default:
		return nil, fmt.Errorf("unknown store kind %q", bits[0])
	}
}

// validate checks a transaction before it is persisted.
func validate(t models.Transaction) error {
	if t.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %v", t.Amount)
	}
	if t.Type != models.Credit && t.Type != models.Debit {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// normalize fills defaults of a transaction about to be created.
func normalize(t models.Transaction) models.Transaction {
	if t.Frequency == "" {
		t.Frequency = models.Irregular
	}
	t.Description = strings.TrimSpace(t.Description)
	return t
}

func validateAll(txns []models.Transaction) ([]models.Transaction, error) {
	out := make([]models.Transaction, len(txns))
	for i, t := range txns {
		t = normalize(t)
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("%w: transaction %d: %w", ErrInvalid, i+1, err)
		}
		out[i] = t
	}
	return out, nil
}
