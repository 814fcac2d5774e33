package jobs

import (
	"context"
	"time"

	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/backend"
	"github.com/udhayakumarcp/Transaction-Processor-Agent-API/internal/pipeline"
)

// JobType represents the type of job to be executed.
type JobType string

const (
	// JobTypeExtractBatch represents a statement extraction batch job.
	JobTypeExtractBatch JobType = "extract_batch"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
)

// ExtractBatchJob carries one extraction request through the queue: the
// uploaded statement and vendor bytes, the model selection and the
// caller's credential. The credential and raw file bytes never appear in
// the job's JSON representation.
type ExtractBatchJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Model selects the AI backend for this batch.
	Model backend.ModelSelector `json:"model"`

	// APIKey is the caller-supplied backend credential. Excluded from
	// serialization.
	APIKey string `json:"-"`

	// Statements are the uploaded statement documents, in input order.
	Statements []pipeline.Document `json:"-"`

	// VendorFile is the uploaded vendor reference file.
	VendorFile pipeline.Document `json:"-"`

	// StatementNames echoes the uploaded filenames for status queries.
	StatementNames []string `json:"statements"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// StartedAt is when the job started processing.
	StartedAt *time.Time `json:"started_at,omitempty"`

	// CompletedAt is when the job completed (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// Result holds the batch outcome once the job completed.
	Result *pipeline.BatchResult `json:"result,omitempty"`
}

// Job is a generic interface for all job types.
type Job interface {
	// GetID returns the unique job identifier.
	GetID() string

	// GetType returns the job type.
	GetType() JobType

	// GetStatus returns the current job status.
	GetStatus() JobStatus
}

// GetID implements the Job interface.
func (j *ExtractBatchJob) GetID() string {
	return j.JobID
}

// GetType implements the Job interface.
func (j *ExtractBatchJob) GetType() JobType {
	return JobTypeExtractBatch
}

// GetStatus implements the Job interface.
func (j *ExtractBatchJob) GetStatus() JobStatus {
	return j.Status
}

// Publisher defines the interface for publishing jobs to a queue.
type Publisher interface {
	// PublishExtractBatch publishes a statement extraction job.
	PublishExtractBatch(ctx context.Context, job *ExtractBatchJob) error

	// Close closes the publisher and releases resources.
	Close() error
}

// Consumer defines the interface for consuming jobs from a queue.
type Consumer interface {
	// Start begins consuming jobs from the queue.
	// The handler function is called for each job received.
	Start(ctx context.Context, handler JobHandler) error

	// Stop stops consuming jobs and waits for in-flight jobs to complete.
	Stop(ctx context.Context) error
}

// JobHandler processes a job. A returned error marks the job failed.
type JobHandler func(ctx context.Context, job *ExtractBatchJob) error

// JobStore defines the interface for storing and retrieving job status.
type JobStore interface {
	// SaveJob saves or updates a job's state.
	SaveJob(ctx context.Context, job *ExtractBatchJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*ExtractBatchJob, error)

	// ListJobs retrieves jobs with optional filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*ExtractBatchJob, error)
}

// JobFilter defines filtering criteria for listing jobs.
type JobFilter struct {
	// Status filters jobs by status.
	Status JobStatus

	// Limit limits the number of results.
	Limit int

	// Offset for pagination.
	Offset int
}
