package scout

import (
	"context"
	"sync"
	"time"

	"github.com/talentlens/talentlens/internal/domain"
)

// Tracker holds job progress records in memory. The runner is the single
// writer; pollers and stream subscribers read snapshots. Terminal states
// are final and progress never decreases within one run.
type Tracker struct {
	mu      sync.RWMutex
	jobs    map[string]*domain.Job
	cancels map[string]context.CancelFunc
	subs    map[string][]chan domain.Job
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		jobs:    make(map[string]*domain.Job),
		cancels: make(map[string]context.CancelFunc),
		subs:    make(map[string][]chan domain.Job),
	}
}

// Create registers a pending job and its cancel function.
func (t *Tracker) Create(id string, cancel context.CancelFunc) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.jobs[id] = &domain.Job{
		ID:        id,
		Status:    domain.JobStatusPending,
		StartedAt: time.Now(),
	}
	t.cancels[id] = cancel
}

// Progress moves a job to processing and advances its progress. Updates
// against a terminal job are ignored; a lower percentage than the current
// one is clamped so pollers never observe progress going backwards.
func (t *Tracker) Progress(id string, percent float64, target, message string) {
	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok || job.Terminal() {
		t.mu.Unlock()
		return
	}
	job.Status = domain.JobStatusProcessing
	if percent > job.Progress {
		job.Progress = percent
	}
	job.CurrentTarget = target
	job.Message = message
	snapshot := *job
	subs := t.subs[id]
	t.mu.Unlock()

	t.notify(subs, snapshot)
}

// Complete marks a job completed with its result.
func (t *Tracker) Complete(id string, result []domain.ContributorAnalysis, message string) {
	t.finish(id, domain.JobStatusCompleted, result, "", message)
}

// Fail marks a job failed with a short reason. The reason is a summary,
// never a raw upstream error body.
func (t *Tracker) Fail(id string, reason string) {
	t.finish(id, domain.JobStatusFailed, nil, reason, "")
}

func (t *Tracker) finish(id, status string, result []domain.ContributorAnalysis, errMsg, message string) {
	t.mu.Lock()
	job, ok := t.jobs[id]
	if !ok || job.Terminal() {
		t.mu.Unlock()
		return
	}
	job.Status = status
	job.Result = result
	job.Error = errMsg
	job.Message = message
	job.CurrentTarget = ""
	if status == domain.JobStatusCompleted {
		job.Progress = 100
	}
	now := time.Now()
	job.CompletedAt = &now
	delete(t.cancels, id)
	snapshot := *job
	subs := t.subs[id]
	t.mu.Unlock()

	t.notify(subs, snapshot)
}

// Get returns a snapshot of a job.
func (t *Tracker) Get(id string) (domain.Job, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return *job, true
}

// Cancel aborts a running job. Returns false if the job is unknown or
// already terminal.
func (t *Tracker) Cancel(id string) bool {
	t.mu.Lock()
	cancel, ok := t.cancels[id]
	delete(t.cancels, id)
	t.mu.Unlock()
	if !ok {
		return false
	}
	cancel()
	return true
}

// Subscribe returns a channel receiving job snapshots on every update.
func (t *Tracker) Subscribe(id string) chan domain.Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch := make(chan domain.Job, 16)
	t.subs[id] = append(t.subs[id], ch)
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (t *Tracker) Unsubscribe(id string, ch chan domain.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	subs := t.subs[id]
	for i, s := range subs {
		if s == ch {
			t.subs[id] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	close(ch)
}

func (t *Tracker) notify(subs []chan domain.Job, snapshot domain.Job) {
	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default: // slow subscriber, drop the update
		}
	}
}
