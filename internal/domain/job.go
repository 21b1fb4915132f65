package domain

import "time"

// Job statuses. Completed and failed are terminal; there is no transition
// out of them.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job is the progress record of one pipeline run. It is written by a single
// writer (the runner) and read by pollers as snapshots.
type Job struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	Progress      float64               `json:"progress"` // 0-100, monotonically non-decreasing
	CurrentTarget string                `json:"current_target,omitempty"`
	Message       string                `json:"message,omitempty"`
	Result        []ContributorAnalysis `json:"result,omitempty"`
	Error         string                `json:"error,omitempty"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
}

// Terminal reports whether the job reached a final state.
func (j Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
