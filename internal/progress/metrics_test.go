package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Creation(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.NotNil(t, metrics.startedCounter)
	assert.NotNil(t, metrics.completedCounter)
	assert.NotNil(t, metrics.failedCounter)
	assert.NotNil(t, metrics.durationHistogram)
	assert.NotNil(t, metrics.activeGauge)
}

func TestMetrics_RecordLifecycle(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("record started", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordStarted(ctx, "build-app", "op-1")
		})
	})

	t.Run("record completed with duration", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordCompleted(ctx, "build-app", "op-1", 5*time.Second)
		})
	})

	t.Run("record failed with error type", func(t *testing.T) {
		metrics.RecordStarted(ctx, "deploy-app", "op-2")
		assert.NotPanics(t, func() {
			metrics.RecordFailed(ctx, "deploy-app", "op-2", "specialist", 3*time.Second)
		})
	})
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	metrics, err := NewMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(id int) {
			operationID := fmt.Sprintf("op-%d", id)
			metrics.RecordStarted(ctx, "build-app", operationID)

			duration := time.Duration(id) * 100 * time.Millisecond
			if id%2 == 0 {
				metrics.RecordCompleted(ctx, "build-app", operationID, duration)
			} else {
				metrics.RecordFailed(ctx, "build-app", operationID, "specialist", duration)
			}

			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
