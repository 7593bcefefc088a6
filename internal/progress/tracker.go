// Package progress tracks multi-step command operations: live state in
// memory, counters in OpenTelemetry, rows in PostgreSQL when a store is
// attached.
package progress

import (
	"context"
	"log"
	"sync"
	"time"
)

// completedHistoryLimit bounds the in-memory completed-operation ring.
const completedHistoryLimit = 100

// OperationInfo describes an operation at start time.
type OperationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TotalSteps  int    `json:"total_steps"`
}

// Operation is the live view of one tracked operation.
type Operation struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CurrentStep int        `json:"current_step"`
	TotalSteps  int        `json:"total_steps"`
	LastMessage string     `json:"last_message,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Stats aggregates tracker counters since process start.
type Stats struct {
	Started         int           `json:"started"`
	Completed       int           `json:"completed"`
	Failed          int           `json:"failed"`
	Active          int           `json:"active"`
	AverageDuration time.Duration `json:"average_duration"`
}

// Tracker tracks active and recently completed operations. A nil store or
// nil metrics disables the corresponding sink; in-memory tracking always
// works.
type Tracker struct {
	mu        sync.Mutex
	active    map[string]*Operation
	completed []*Operation
	stats     Stats
	totalTime time.Duration

	store   *Store
	metrics *Metrics
}

// NewTracker creates a tracker with optional persistence and metrics sinks.
func NewTracker(store *Store, metrics *Metrics) *Tracker {
	return &Tracker{
		active:  make(map[string]*Operation),
		store:   store,
		metrics: metrics,
	}
}

// StartOperation registers a new active operation.
func (t *Tracker) StartOperation(ctx context.Context, id string, info OperationInfo) {
	op := &Operation{
		ID:          id,
		Name:        info.Name,
		Description: info.Description,
		Status:      StatusPending,
		TotalSteps:  info.TotalSteps,
		StartedAt:   time.Now(),
	}

	t.mu.Lock()
	t.active[id] = op
	t.stats.Started++
	t.stats.Active = len(t.active)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.RecordStarted(ctx, info.Name, id)
	}
	if t.store != nil {
		userID, _ := ctx.Value(userIDContextKey).(string)
		if err := t.store.CreateOperation(ctx, id, info.Name, info.Description, userID, info.TotalSteps); err != nil {
			log.Printf(`{"level":"error","message":"Failed to persist operation","operation_id":"%s","error":"%v"}`, id, err)
		}
	}
}

// UpdateProgress records a completed step of an active operation. Updates
// for unknown operations are dropped with a warning.
func (t *Tracker) UpdateProgress(ctx context.Context, id string, step int, message string) {
	t.mu.Lock()
	op, ok := t.active[id]
	if ok {
		op.Status = StatusRunning
		op.CurrentStep = step
		op.LastMessage = message
	}
	t.mu.Unlock()

	if !ok {
		log.Printf(`{"level":"warn","message":"Progress update for unknown operation","operation_id":"%s"}`, id)
		return
	}

	if t.store != nil {
		if err := t.store.RecordStep(ctx, id, step, message); err != nil {
			log.Printf(`{"level":"error","message":"Failed to persist step","operation_id":"%s","error":"%v"}`, id, err)
		}
	}
}

// CompleteOperation marks an operation finished and moves it to the
// completed history.
func (t *Tracker) CompleteOperation(ctx context.Context, id string, summary string) {
	op, duration := t.finish(id, StatusCompleted, summary, "")
	if op == nil {
		return
	}

	t.mu.Lock()
	t.stats.Completed++
	t.totalTime += duration
	finished := t.stats.Completed + t.stats.Failed
	t.stats.AverageDuration = t.totalTime / time.Duration(finished)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.RecordCompleted(ctx, op.Name, id, duration)
	}
	if t.store != nil {
		if err := t.store.CompleteOperation(ctx, id, map[string]interface{}{"summary": summary}); err != nil {
			log.Printf(`{"level":"error","message":"Failed to persist completion","operation_id":"%s","error":"%v"}`, id, err)
		}
	}
}

// FailOperation marks an operation failed and moves it to the completed
// history.
func (t *Tracker) FailOperation(ctx context.Context, id string, opErr error) {
	errMsg := "unknown error"
	if opErr != nil {
		errMsg = opErr.Error()
	}

	op, duration := t.finish(id, StatusFailed, "", errMsg)
	if op == nil {
		return
	}

	t.mu.Lock()
	t.stats.Failed++
	t.totalTime += duration
	finished := t.stats.Completed + t.stats.Failed
	t.stats.AverageDuration = t.totalTime / time.Duration(finished)
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.RecordFailed(ctx, op.Name, id, "execution_error", duration)
	}
	if t.store != nil {
		if err := t.store.FailOperation(ctx, id, errMsg); err != nil {
			log.Printf(`{"level":"error","message":"Failed to persist failure","operation_id":"%s","error":"%v"}`, id, err)
		}
	}
}

func (t *Tracker) finish(id, status, summary, errMsg string) (*Operation, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	op, ok := t.active[id]
	if !ok {
		log.Printf(`{"level":"warn","message":"Finish for unknown operation","operation_id":"%s"}`, id)
		return nil, 0
	}

	delete(t.active, id)
	t.stats.Active = len(t.active)

	now := time.Now()
	op.Status = status
	op.Summary = summary
	op.Error = errMsg
	op.CompletedAt = &now

	t.completed = append(t.completed, op)
	if len(t.completed) > completedHistoryLimit {
		t.completed = t.completed[len(t.completed)-completedHistoryLimit:]
	}

	return op, now.Sub(op.StartedAt)
}

// ActiveOperations returns a snapshot of every active operation.
func (t *Tracker) ActiveOperations() []*Operation {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Operation, 0, len(t.active))
	for _, op := range t.active {
		copied := *op
		out = append(out, &copied)
	}
	return out
}

// CompletedOperations returns the n most recently finished operations,
// newest first. n <= 0 returns the full retained history.
func (t *Tracker) CompletedOperations(n int) []*Operation {
	t.mu.Lock()
	defer t.mu.Unlock()

	if n <= 0 || n > len(t.completed) {
		n = len(t.completed)
	}
	out := make([]*Operation, 0, n)
	for i := len(t.completed) - 1; i >= len(t.completed)-n; i-- {
		copied := *t.completed[i]
		out = append(out, &copied)
	}
	return out
}

// GetOperation returns the live view of one operation. Active operations
// are checked first, then the retained completed history, then the store,
// so rows evicted from the in-memory ring stay retrievable.
func (t *Tracker) GetOperation(ctx context.Context, id string) (*Operation, bool) {
	t.mu.Lock()
	if op, ok := t.active[id]; ok {
		copied := *op
		t.mu.Unlock()
		return &copied, true
	}
	for i := len(t.completed) - 1; i >= 0; i-- {
		if t.completed[i].ID == id {
			copied := *t.completed[i]
			t.mu.Unlock()
			return &copied, true
		}
	}
	t.mu.Unlock()

	if t.store == nil {
		return nil, false
	}
	record, err := t.store.GetOperation(ctx, id)
	if err != nil {
		return nil, false
	}
	op := &Operation{
		ID:          record.ID,
		Name:        record.Command,
		Description: record.UserInput,
		Status:      record.Status,
		CurrentStep: record.CurrentStep,
		TotalSteps:  record.TotalSteps,
		StartedAt:   record.StartedAt,
		CompletedAt: record.CompletedAt,
	}
	if record.Error != nil {
		op.Error = *record.Error
	}
	return op, true
}

// GetStats returns a snapshot of tracker counters.
func (t *Tracker) GetStats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// contextKey is a private type for tracker context values.
type contextKey string

// userIDContextKey carries the acting user through to persistence.
const userIDContextKey contextKey = "progress_user_id"

// WithUserID attaches the acting user to a context so persisted operations
// carry ownership.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
