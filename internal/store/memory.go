package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Memory is an in-process repository. It is safe for concurrent use.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string][]models.Transaction
}

// NewMemory returns an empty repository.
func NewMemory() *Memory {
	return &Memory{nextID: 1, users: make(map[string][]models.Transaction)}
}

func (m *Memory) List(_ context.Context, userID string) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sorted(m.users[userID]), nil
}

func (m *Memory) Create(_ context.Context, userID string, txns []models.Transaction) (int, error) {
	valid, err := validateAll(txns)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range valid {
		t.ID = strconv.FormatInt(m.nextID, 10)
		m.nextID++
		m.users[userID] = append(m.users[userID], t)
	}
	return len(valid), nil
}

func (m *Memory) Update(_ context.Context, userID, id string, patch models.Patch) (models.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.users[userID]
	for i := range list {
		if list[i].ID == id {
			list[i] = patch.Apply(list[i])
			return list[i], nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

func (m *Memory) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.users[userID]
	for i := range list {
		if list[i].ID == id {
			m.users[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// sorted returns a copy ordered by date, then numeric id.
func sorted(txns []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		a, _ := strconv.ParseInt(out[i].ID, 10, 64)
		b, _ := strconv.ParseInt(out[j].ID, 10, 64)
		return a < b
	})
	return out
}
