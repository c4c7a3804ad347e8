package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/jobs"
)

// Store is an in-memory implementation of jobs.Store. It is safe for
// concurrent use and hands out copies so callers never observe a job
// while a worker mutates it.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*jobs.ExtractJob
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]*jobs.ExtractJob)}
}

// Save stores or replaces a job.
func (s *Store) Save(ctx context.Context, job *jobs.ExtractJob) error {
	if job.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobCopy := *job
	s.jobs[job.JobID] = &jobCopy
	return nil
}

// Get retrieves a job by ID.
func (s *Store) Get(ctx context.Context, jobID string) (*jobs.ExtractJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", jobs.ErrJobNotFound, jobID)
	}
	jobCopy := *job
	return &jobCopy, nil
}

// List returns matching jobs, newest first.
func (s *Store) List(ctx context.Context, filter jobs.Filter) ([]*jobs.ExtractJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*jobs.ExtractJob{}
	for _, job := range s.jobs {
		if filter.UserID != "" && job.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		jobCopy := *job
		result = append(result, &jobCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].JobID < result[j].JobID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

var _ jobs.Store = (*Store)(nil)
