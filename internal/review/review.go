// Package review holds extracted candidates while the user edits them and
// merges the confirmed set into the transaction store.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/store"
)

// ErrCandidateNotFound is returned for an unknown candidate id.
var ErrCandidateNotFound = errors.New("candidate not found")

// ErrNothingToMerge is returned by Merge when no candidates are pending.
var ErrNothingToMerge = errors.New("no candidates to merge")

// Session is one user's pending candidates. Edits are last-write-wins; a
// failed merge keeps every candidate.
type Session struct {
	mu         sync.Mutex
	candidates []models.Transaction
}

// Candidates returns a copy of the pending candidates in extraction order.
func (s *Session) Candidates() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Add appends candidates from an extraction. Placeholder records are
// accepted; the user deletes them during review.
func (s *Session) Add(txns []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, txns...)
}

// Replace discards the pending candidates in favour of txns.
func (s *Session) Replace(txns []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append([]models.Transaction(nil), txns...)
}

// Edit applies a patch to one candidate.
func (s *Session) Edit(id string, patch models.Patch) (models.Transaction, error) {
	if err := patch.Validate(); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates[i] = patch.Apply(s.candidates[i])
			return s.candidates[i], nil
		}
	}
	return models.Transaction{}, ErrCandidateNotFound
}

// Delete drops one candidate.
func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.candidates {
		if s.candidates[i].ID == id {
			s.candidates = append(s.candidates[:i:i], s.candidates[i+1:]...)
			return nil
		}
	}
	return ErrCandidateNotFound
}

// Merge saves the pending candidates to repo in one batch. Candidates are
// cleared only after the repository accepted them.
func (s *Session) Merge(ctx context.Context, repo store.Repository, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.candidates) == 0 {
		return 0, ErrNothingToMerge
	}
	batch := make([]models.Transaction, len(s.candidates))
	copy(batch, s.candidates)

	n, err := repo.Create(ctx, userID, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to merge candidates: %w", err)
	}
	s.candidates = nil
	return n, nil
}

// Registry maps users to their review sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Session returns the user's session, creating it on first use.
func (r *Registry) Session(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	if !ok {
		s = &Session{}
		r.sessions[userID] = s
	}
	return s
}
