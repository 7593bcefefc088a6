package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operation statuses. Completed and failed are terminal.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// OperationRecord is one persisted operation row.
type OperationRecord struct {
	ID              string                 `json:"id"`
	Command         string                 `json:"command"`
	UserInput       string                 `json:"user_input"`
	Status          string                 `json:"status"`
	CurrentStep     int                    `json:"current_step"`
	TotalSteps      int                    `json:"total_steps"`
	Result          map[string]interface{} `json:"result,omitempty"`
	Error           *string                `json:"error,omitempty"`
	CreatedByUserID string                 `json:"created_by_user_id"`
	StartedAt       time.Time              `json:"started_at"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
}

// StepRecord is one recorded progress step of an operation.
type StepRecord struct {
	OperationID string    `json:"operation_id"`
	Step        int       `json:"step"`
	Message     string    `json:"message"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Store persists operations and their progress steps in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates an operation store on an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// CreateOperation inserts a new pending operation.
func (s *Store) CreateOperation(ctx context.Context, id, command, userInput, userID string, totalSteps int) error {
	var owner *string
	if userID != "" {
		owner = &userID
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO operations (id, command, user_input, status, current_step, total_steps, created_by_user_id)
		 VALUES ($1, $2, $3, $4, 0, $5, $6)`,
		id, command, userInput, StatusPending, totalSteps, owner,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

// RecordStep moves the operation to running, advances its current step and
// appends a step row.
func (s *Store) RecordStep(ctx context.Context, id string, step int, message string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := s.lockOperation(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := validateTransition(status, StatusRunning); err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE operations SET status = $1, current_step = $2 WHERE id = $3`,
		StatusRunning, step, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation step: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO operation_steps (operation_id, step, message) VALUES ($1, $2, $3)`,
		id, step, message,
	)
	if err != nil {
		return fmt.Errorf("failed to record step: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CompleteOperation marks an operation completed with its result payload.
func (s *Store) CompleteOperation(ctx context.Context, id string, result map[string]interface{}) error {
	return s.finishOperation(ctx, id, StatusCompleted, result, nil)
}

// FailOperation marks an operation failed with an error message.
func (s *Store) FailOperation(ctx context.Context, id string, errorMessage string) error {
	return s.finishOperation(ctx, id, StatusFailed, nil, &errorMessage)
}

func (s *Store) finishOperation(ctx context.Context, id, newStatus string, result map[string]interface{}, errorMessage *string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	status, err := s.lockOperation(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := validateTransition(status, newStatus); err != nil {
		return err
	}

	var resultJSON []byte
	if result != nil {
		resultJSON, err = json.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE operations
		 SET status = $1, result = $2, error = $3, completed_at = NOW()
		 WHERE id = $4`,
		newStatus, resultJSON, errorMessage, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish operation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetOperation retrieves one operation by ID.
func (s *Store) GetOperation(ctx context.Context, id string) (*OperationRecord, error) {
	var op OperationRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, command, user_input, status, current_step, total_steps, result, error, COALESCE(created_by_user_id::text, ''), started_at, completed_at
		FROM operations
		WHERE id = $1
	`, id).Scan(
		&op.ID, &op.Command, &op.UserInput, &op.Status, &op.CurrentStep,
		&op.TotalSteps, &op.Result, &op.Error, &op.CreatedByUserID,
		&op.StartedAt, &op.CompletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("operation not found")
		}
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}
	return &op, nil
}

// IsOwnedBy reports whether the operation was created by the given user.
func (s *Store) IsOwnedBy(ctx context.Context, id, userID string) bool {
	var found string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM operations WHERE id = $1 AND created_by_user_id = $2`,
		id, userID,
	).Scan(&found)
	return err == nil
}

// ListActive returns operations still pending or running, oldest first.
func (s *Store) ListActive(ctx context.Context) ([]*OperationRecord, error) {
	return s.list(ctx, `
		SELECT id, command, user_input, status, current_step, total_steps, result, error, COALESCE(created_by_user_id::text, ''), started_at, completed_at
		FROM operations
		WHERE status IN ($1, $2)
		ORDER BY started_at ASC
	`, StatusPending, StatusRunning)
}

// ListCompleted returns the n most recently finished operations.
func (s *Store) ListCompleted(ctx context.Context, n int) ([]*OperationRecord, error) {
	return s.list(ctx, `
		SELECT id, command, user_input, status, current_step, total_steps, result, error, COALESCE(created_by_user_id::text, ''), started_at, completed_at
		FROM operations
		WHERE status IN ($1, $2)
		ORDER BY completed_at DESC
		LIMIT $3
	`, StatusCompleted, StatusFailed, n)
}

func (s *Store) list(ctx context.Context, query string, args ...interface{}) ([]*OperationRecord, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var ops []*OperationRecord
	for rows.Next() {
		var op OperationRecord
		err := rows.Scan(
			&op.ID, &op.Command, &op.UserInput, &op.Status, &op.CurrentStep,
			&op.TotalSteps, &op.Result, &op.Error, &op.CreatedByUserID,
			&op.StartedAt, &op.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		ops = append(ops, &op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operations: %w", err)
	}

	return ops, nil
}

// StoreStats aggregates persistent operation counts.
type StoreStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Stats returns aggregate counts across all operations.
func (s *Store) Stats(ctx context.Context) (*StoreStats, error) {
	var stats StoreStats
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ($1, $2)),
		       COUNT(*) FILTER (WHERE status = $3),
		       COUNT(*) FILTER (WHERE status = $4)
		FROM operations
	`, StatusPending, StatusRunning, StatusCompleted, StatusFailed).Scan(
		&stats.Total, &stats.Active, &stats.Completed, &stats.Failed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation stats: %w", err)
	}
	return &stats, nil
}

// lockOperation locks an operation row for update to prevent concurrent
// status changes.
func (s *Store) lockOperation(ctx context.Context, tx pgx.Tx, id string) (string, error) {
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM operations WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("operation not found or locked")
	}
	return status, nil
}

// validTransitions maps each status to the statuses it may move to.
// Completed and failed are terminal.
var validTransitions = map[string][]string{
	StatusPending:   {StatusRunning, StatusCompleted, StatusFailed},
	StatusRunning:   {StatusRunning, StatusCompleted, StatusFailed},
	StatusCompleted: {},
	StatusFailed:    {},
}

func validateTransition(current, next string) error {
	allowed, exists := validTransitions[current]
	if !exists {
		return fmt.Errorf("invalid current status: %s", current)
	}
	for _, a := range allowed {
		if a == next {
			return nil
		}
	}
	return fmt.Errorf("invalid status transition from %s to %s", current, next)
}
