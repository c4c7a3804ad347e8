// Package history keeps the most recent generated reports per user so they
// can be downloaded again without recomputation.
package history

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/report"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/stats"
)

// DefaultLimit is the number of entries kept per user.
const DefaultLimit = 10

// Entry is one remembered report.
type Entry struct {
	ID          string              `json:"id"`
	Type        models.ReportType   `json:"reportType"`
	Format      models.Format       `json:"format"`
	Title       string              `json:"title"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Stats       stats.Summary       `json:"stats"`
	Filters     models.ReportConfig `json:"filters"`
	SizeBytes   int                 `json:"size"`
	Report      *report.Report      `json:"-"`
}

// NewEntry snapshots a report. The size is the exported artifact size when
// known, otherwise an estimate from the report's JSON encoding.
func NewEntry(r *report.Report, format models.Format, size int) Entry {
	if size <= 0 {
		if b, err := json.Marshal(r); err == nil {
			size = len(b)
		}
	}
	return Entry{
		ID:          r.ID,
		Type:        r.Type,
		Format:      format,
		Title:       r.Title,
		GeneratedAt: r.GeneratedAt,
		Stats:       r.Stats,
		Filters:     r.Config,
		SizeBytes:   size,
		Report:      r,
	}
}

// Store is a bounded, newest-first report history keyed by user. It is safe
// for concurrent use.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries map[string][]Entry
}

// New returns a store keeping at most limit entries per user. A limit below
// one uses DefaultLimit.
func New(limit int) *Store {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Store{limit: limit, entries: make(map[string][]Entry)}
}

// Add records e as the newest entry for the user, evicting the oldest when
// the limit is exceeded. An entry with the same id replaces the earlier one.
func (s *Store) Add(userID string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]Entry, 0, s.limit)
	list = append(list, e)
	for _, old := range s.entries[userID] {
		if old.ID == e.ID {
			continue
		}
		if len(list) == s.limit {
			break
		}
		list = append(list, old)
	}
	s.entries[userID] = list
}

// List returns a copy of the user's entries, newest first.
func (s *Store) List(userID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries[userID]))
	copy(out, s.entries[userID])
	return out
}

// Get finds an entry by report id.
func (s *Store) Get(userID, id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries[userID] {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Clear drops every entry of the user.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}
