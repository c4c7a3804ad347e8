// Package jobs defines background extraction jobs and the interfaces used to
// queue them and track their state.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/Manoj-Myana/smart-finance-tracker-sub000/internal/models"
)

// Status represents the current status of a job.
type Status string

const (
	// StatusPending indicates the job is waiting to be processed.
	StatusPending Status = "pending"
	// StatusRunning indicates the job is currently being processed.
	StatusRunning Status = "running"
	// StatusCompleted indicates the job completed successfully.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the job failed. Failed jobs are not retried.
	StatusFailed Status = "failed"
)

// ErrJobNotFound is returned for an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// ErrQueueClosed is returned when publishing to or starting a stopped queue.
var ErrQueueClosed = errors.New("queue is closed")

// ExtractJob is one uploaded statement waiting to be turned into candidates.
type ExtractJob struct {
	JobID    string            `json:"jobId"`
	UserID   string            `json:"userId"`
	Filename string            `json:"filename"`
	Source   models.SourceKind `json:"source"`

	// Input is the uploaded file or pasted text. It is not reported back.
	Input []byte `json:"-"`

	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Error       string     `json:"error,omitempty"`

	Result *models.StatementInfo `json:"result,omitempty"`
}

// Done reports whether the job reached a terminal status.
func (j *ExtractJob) Done() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// Handler processes a job and returns the extraction result.
type Handler func(ctx context.Context, job *ExtractJob) (*models.StatementInfo, error)

// Publisher enqueues jobs.
type Publisher interface {
	Publish(ctx context.Context, job *ExtractJob) error
}

// Consumer runs queued jobs through a handler.
type Consumer interface {
	// Start launches the workers. It returns immediately.
	Start(ctx context.Context, handler Handler) error
	// Stop stops consuming and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// Store tracks job state.
type Store interface {
	Save(ctx context.Context, job *ExtractJob) error
	Get(ctx context.Context, jobID string) (*ExtractJob, error)
	List(ctx context.Context, filter Filter) ([]*ExtractJob, error)
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	UserID string
	Status Status
	Limit  int
}
