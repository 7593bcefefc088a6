package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	metrics, err := NewMetrics()
	require.NoError(t, err)
	return NewTracker(nil, metrics)
}

func TestTracker_StartAndComplete(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	tracker.StartOperation(ctx, "op-1", OperationInfo{
		Name:        "build-app",
		Description: "a simple todo app",
		TotalSteps:  8,
	})

	active := tracker.ActiveOperations()
	require.Len(t, active, 1)
	assert.Equal(t, "op-1", active[0].ID)
	assert.Equal(t, StatusPending, active[0].Status)
	assert.Equal(t, 8, active[0].TotalSteps)

	tracker.UpdateProgress(ctx, "op-1", 1, "Analyzing vibe")
	tracker.UpdateProgress(ctx, "op-1", 2, "Planning application")

	active = tracker.ActiveOperations()
	require.Len(t, active, 1)
	assert.Equal(t, StatusRunning, active[0].Status)
	assert.Equal(t, 2, active[0].CurrentStep)
	assert.Equal(t, "Planning application", active[0].LastMessage)

	tracker.CompleteOperation(ctx, "op-1", "todo-app built")

	assert.Empty(t, tracker.ActiveOperations())
	completed := tracker.CompletedOperations(5)
	require.Len(t, completed, 1)
	assert.Equal(t, StatusCompleted, completed[0].Status)
	assert.Equal(t, "todo-app built", completed[0].Summary)
	assert.NotNil(t, completed[0].CompletedAt)
}

func TestTracker_FailOperation(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	tracker.StartOperation(ctx, "op-2", OperationInfo{Name: "build-app", TotalSteps: 8})
	tracker.FailOperation(ctx, "op-2", errors.New("backend-specialist unavailable"))

	assert.Empty(t, tracker.ActiveOperations())
	completed := tracker.CompletedOperations(1)
	require.Len(t, completed, 1)
	assert.Equal(t, StatusFailed, completed[0].Status)
	assert.Equal(t, "backend-specialist unavailable", completed[0].Error)

	stats := tracker.GetStats()
	assert.Equal(t, 1, stats.Started)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, stats.Completed)
	assert.Equal(t, 0, stats.Active)
}

func TestTracker_UnknownOperationIsDropped(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	// None of these should panic or alter stats.
	tracker.UpdateProgress(ctx, "nope", 1, "message")
	tracker.CompleteOperation(ctx, "nope", "summary")
	tracker.FailOperation(ctx, "nope", errors.New("boom"))

	stats := tracker.GetStats()
	assert.Equal(t, Stats{}, stats)
}

func TestTracker_CompletedOrderNewestFirst(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("op-%d", i)
		tracker.StartOperation(ctx, id, OperationInfo{Name: "build-app", TotalSteps: 4})
		tracker.CompleteOperation(ctx, id, "done")
	}

	completed := tracker.CompletedOperations(2)
	require.Len(t, completed, 2)
	assert.Equal(t, "op-2", completed[0].ID)
	assert.Equal(t, "op-1", completed[1].ID)
}

func TestTracker_CompletedOperationsNonPositiveReturnsAll(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("op-%d", i)
		tracker.StartOperation(ctx, id, OperationInfo{Name: "build-app", TotalSteps: 4})
		tracker.CompleteOperation(ctx, id, "done")
	}

	for _, n := range []int{0, -1} {
		completed := tracker.CompletedOperations(n)
		require.Len(t, completed, 3, "n=%d", n)
		assert.Equal(t, "op-2", completed[0].ID)
	}
}

func TestTracker_GetOperation(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	tracker.StartOperation(ctx, "op-active", OperationInfo{Name: "build-app", TotalSteps: 8})

	tracker.StartOperation(ctx, "op-done", OperationInfo{Name: "deploy-app", TotalSteps: 3})
	tracker.CompleteOperation(ctx, "op-done", "shipped")

	op, ok := tracker.GetOperation(ctx, "op-active")
	require.True(t, ok)
	assert.Equal(t, StatusPending, op.Status)

	op, ok = tracker.GetOperation(ctx, "op-done")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, op.Status)
	assert.Equal(t, "shipped", op.Summary)

	// Without a store there is nothing to fall back to.
	_, ok = tracker.GetOperation(ctx, "op-unknown")
	assert.False(t, ok)
}

func TestTracker_HistoryBounded(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < completedHistoryLimit+20; i++ {
		id := fmt.Sprintf("op-%d", i)
		tracker.StartOperation(ctx, id, OperationInfo{Name: "build-app", TotalSteps: 4})
		tracker.CompleteOperation(ctx, id, "done")
	}

	completed := tracker.CompletedOperations(completedHistoryLimit * 2)
	assert.Len(t, completed, completedHistoryLimit)
	// Newest survives trimming.
	assert.Equal(t, fmt.Sprintf("op-%d", completedHistoryLimit+19), completed[0].ID)
}

func TestTracker_Stats(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	tracker.StartOperation(ctx, "a", OperationInfo{Name: "build-app", TotalSteps: 8})
	tracker.StartOperation(ctx, "b", OperationInfo{Name: "deploy", TotalSteps: 2})
	tracker.CompleteOperation(ctx, "a", "done")

	stats := tracker.GetStats()
	assert.Equal(t, 2, stats.Started)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Active)
	assert.GreaterOrEqual(t, int64(stats.AverageDuration), int64(0))
}

func TestTracker_ConcurrentOperations(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("op-%d", n)
			tracker.StartOperation(ctx, id, OperationInfo{Name: "build-app", TotalSteps: 4})
			tracker.UpdateProgress(ctx, id, 1, "step one")
			if n%2 == 0 {
				tracker.CompleteOperation(ctx, id, "done")
			} else {
				tracker.FailOperation(ctx, id, errors.New("boom"))
			}
		}(i)
	}
	wg.Wait()

	stats := tracker.GetStats()
	assert.Equal(t, 20, stats.Started)
	assert.Equal(t, 10, stats.Completed)
	assert.Equal(t, 10, stats.Failed)
	assert.Equal(t, 0, stats.Active)
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		current string
		next    string
		ok      bool
	}{
		{StatusPending, StatusRunning, true},
		{StatusPending, StatusFailed, true},
		{StatusRunning, StatusRunning, true},
		{StatusRunning, StatusCompleted, true},
		{StatusCompleted, StatusRunning, false},
		{StatusFailed, StatusCompleted, false},
		{"bogus", StatusRunning, false},
	}

	for _, tt := range tests {
		t.Run(tt.current+"_to_"+tt.next, func(t *testing.T) {
			err := validateTransition(tt.current, tt.next)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
