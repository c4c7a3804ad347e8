package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// JSONFile is a Memory repository persisted to a single JSON document. The
// whole file is rewritten after every change.
type JSONFile struct {
	filename string
	mem      *Memory

	// writeMu serializes mutate-then-persist sequences.
	writeMu sync.Mutex
}

type jsonDocument struct {
	NextID int64                           `json:"nextId"`
	Users  map[string][]models.Transaction `json:"users"`
}

// NewJSONFile loads filename, starting empty when it does not exist yet.
func NewJSONFile(filename string) (*JSONFile, error) {
	f := &JSONFile{filename: filename, mem: NewMemory()}

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %q: %w", filename, err)
	}
	if len(data) == 0 {
		return f, nil
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode store file %q: %w", filename, err)
	}
	if doc.NextID > 0 {
		f.mem.nextID = doc.NextID
	}
	if doc.Users != nil {
		f.mem.users = doc.Users
	}
	return f, nil
}

func (f *JSONFile) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	return f.mem.List(ctx, userID)
}

func (f *JSONFile) Create(ctx context.Context, userID string, txns []models.Transaction) (int, error) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	n, err := f.mem.Create(ctx, userID, txns)
	if err != nil {
		return 0, err
	}
	return n, f.write()
}

func (f *JSONFile) Update(ctx context.Context, userID, id string, patch models.Patch) (models.Transaction, error) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	t, err := f.mem.Update(ctx, userID, id, patch)
	if err != nil {
		return models.Transaction{}, err
	}
	return t, f.write()
}

func (f *JSONFile) Delete(ctx context.Context, userID, id string) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	if err := f.mem.Delete(ctx, userID, id); err != nil {
		return err
	}
	return f.write()
}

// write replaces the file atomically with the current state.
func (f *JSONFile) write() error {
	f.mem.mu.RLock()
	data, err := json.MarshalIndent(jsonDocument{NextID: f.mem.nextID, Users: f.mem.users}, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.filename), ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return os.Rename(tmp.Name(), f.filename)
}
