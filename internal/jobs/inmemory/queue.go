package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/jobs"
	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// DefaultWorkers is the number of concurrent workers when none is configured.
const DefaultWorkers = 2

// Queue is an in-memory job publisher and consumer backed by a buffered
// channel. It is safe for concurrent use. Jobs run at most once.
type Queue struct {
	jobChan   chan *jobs.ExtractJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	store     jobs.Store
	workers   int
	log       zerolog.Logger
	closed    bool

	// Now is the clock used for job timestamps.
	Now func() time.Time
}

// NewQueue creates a queue. bufferSize bounds how many jobs wait before
// Publish blocks; workers <= 0 uses DefaultWorkers.
func NewQueue(bufferSize, workers int, store jobs.Store, log zerolog.Logger) *Queue {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Queue{
		jobChan:   make(chan *jobs.ExtractJob, bufferSize),
		closeChan: make(chan struct{}),
		store:     store,
		workers:   workers,
		log:       log.With().Str("component", "jobs").Logger(),
		Now:       time.Now,
	}
}

// Publish enqueues a job. The ID, status and creation time are filled in
// on the caller's job before it is queued.
func (q *Queue) Publish(ctx context.Context, job *jobs.ExtractJob) error {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	if closed {
		return jobs.ErrQueueClosed
	}

	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	job.Status = jobs.StatusPending
	if job.CreatedAt.IsZero() {
		job.CreatedAt = q.Now()
	}

	if q.store != nil {
		if err := q.store.Save(ctx, job); err != nil {
			return fmt.Errorf("failed to save job: %w", err)
		}
	}

	queued := *job
	select {
	case q.jobChan <- &queued:
		q.log.Debug().Str("job_id", job.JobID).Str("filename", job.Filename).Msg("Job queued")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-q.closeChan:
		return jobs.ErrQueueClosed
	}
}

// Start launches the workers and returns.
func (q *Queue) Start(ctx context.Context, handler jobs.Handler) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return jobs.ErrQueueClosed
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, i, handler)
	}
	q.log.Info().Int("workers", q.workers).Msg("Job queue started")
	return nil
}

func (q *Queue) worker(ctx context.Context, id int, handler jobs.Handler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			if job == nil {
				return
			}
			q.process(ctx, id, job, handler)
		}
	}
}

func (q *Queue) process(ctx context.Context, worker int, job *jobs.ExtractJob, handler jobs.Handler) {
	log := q.log.With().Str("job_id", job.JobID).Int("worker", worker).Logger()

	started := q.Now()
	job.Status = jobs.StatusRunning
	job.StartedAt = &started
	q.save(ctx, job, log)
	log.Info().Str("filename", job.Filename).Msg("Job started")

	result, err := q.run(ctx, job, handler)

	completed := q.Now()
	job.CompletedAt = &completed
	job.Input = nil
	if err != nil {
		job.Status = jobs.StatusFailed
		job.Error = err.Error()
		log.Error().Err(err).Dur("took", completed.Sub(started)).Msg("Job failed")
	} else {
		job.Status = jobs.StatusCompleted
		job.Result = result
		log.Info().Dur("took", completed.Sub(started)).Msg("Job completed")
	}
	q.save(ctx, job, log)
}

// run calls the handler and turns a panic into a job failure.
func (q *Queue) run(ctx context.Context, job *jobs.ExtractJob, handler jobs.Handler) (result *models.StatementInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("job panicked: %v", r)
		}
	}()
	return handler(ctx, job)
}

func (q *Queue) save(ctx context.Context, job *jobs.ExtractJob, log zerolog.Logger) {
	if q.store == nil {
		return
	}
	if err := q.store.Save(ctx, job); err != nil {
		log.Warn().Err(err).Msg("Failed to save job state")
	}
}

// Stop closes the queue and waits for in-flight jobs. Jobs still waiting in
// the buffer stay pending.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.log.Info().Msg("Job queue stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ jobs.Publisher = (*Queue)(nil)
var _ jobs.Consumer = (*Queue)(nil)
