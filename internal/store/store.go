package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// WeightJob is one request to turn raw weight proposals into packaged blend
// weights for a named blending coordinate.
type WeightJob struct {
	ID         uuid.UUID `json:"job_id"`
	Group      string    `json:"group"`
	Coordinate string    `json:"coordinate"`
	Method     string    `json:"method"`

	// Inputs
	RawWeights     []float64 `json:"raw_weights"`
	ExpectedValues []float64 `json:"expected_values,omitempty"`
	ExpectedUnit   string    `json:"expected_unit,omitempty"`
	ActualValues   []float64 `json:"actual_values"`
	CoordUnit      string    `json:"coord_unit,omitempty"`

	// Outputs
	ExpectedCount int       `json:"expected_count,omitempty"`
	PresenceMask  []float64 `json:"presence_mask,omitempty"`
	FinalWeights  []float64 `json:"final_weights,omitempty"`

	// State
	Status JobStatus `json:"status"`
	Error  string    `json:"error,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type JobFilter struct {
	Status *JobStatus
	Group  string
	Limit  int
	Offset int
}

type JobStats struct {
	TotalPending   int `json:"total_pending"`
	TotalCompleted int `json:"total_completed"`
	TotalFailed    int `json:"total_failed"`
}

type Store interface {
	CreateJob(ctx context.Context, job *WeightJob) error
	GetJob(ctx context.Context, id uuid.UUID) (*WeightJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*WeightJob, error)
	GetPendingJobs(ctx context.Context, limit int) ([]*WeightJob, error)
	UpdateJob(ctx context.Context, job *WeightJob) error
	GetStats(ctx context.Context) (*JobStats, error)
	Close() error
}
