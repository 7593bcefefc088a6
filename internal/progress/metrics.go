package progress

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("operation-metrics")

// Metrics provides metrics collection for command operations.
type Metrics struct {
	startedCounter    metric.Int64Counter
	completedCounter  metric.Int64Counter
	failedCounter     metric.Int64Counter
	durationHistogram metric.Float64Histogram
	activeGauge       metric.Int64UpDownCounter
}

// NewMetrics creates a new operation metrics collector.
func NewMetrics() (*Metrics, error) {
	startedCounter, err := meter.Int64Counter(
		"vibe_orchestrator.operations.started",
		metric.WithDescription("Total number of operations started"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	completedCounter, err := meter.Int64Counter(
		"vibe_orchestrator.operations.completed",
		metric.WithDescription("Total number of operations completed successfully"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	failedCounter, err := meter.Int64Counter(
		"vibe_orchestrator.operations.failed",
		metric.WithDescription("Total number of operations that failed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	durationHistogram, err := meter.Float64Histogram(
		"vibe_orchestrator.operation.duration",
		metric.WithDescription("Duration of operation execution in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	activeGauge, err := meter.Int64UpDownCounter(
		"vibe_orchestrator.operations.active",
		metric.WithDescription("Number of currently active operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		startedCounter:    startedCounter,
		completedCounter:  completedCounter,
		failedCounter:     failedCounter,
		durationHistogram: durationHistogram,
		activeGauge:       activeGauge,
	}, nil
}

// RecordStarted records a new operation start.
func (m *Metrics) RecordStarted(ctx context.Context, command, operationID string) {
	m.startedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("operation.id", operationID),
		),
	)
	m.activeGauge.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("command.name", command),
		),
	)
}

// RecordCompleted records a successful operation completion.
func (m *Metrics) RecordCompleted(ctx context.Context, command, operationID string, duration time.Duration) {
	m.completedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("operation.id", operationID),
			attribute.String("status", "completed"),
		),
	)
	m.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("status", "completed"),
		),
	)
	m.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("command.name", command),
		),
	)
}

// RecordFailed records a failed operation.
func (m *Metrics) RecordFailed(ctx context.Context, command, operationID, errorType string, duration time.Duration) {
	m.failedCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("operation.id", operationID),
			attribute.String("status", "failed"),
			attribute.String("error.type", errorType),
		),
	)
	m.durationHistogram.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("status", "failed"),
		),
	)
	m.activeGauge.Add(ctx, -1,
		metric.WithAttributes(
			attribute.String("command.name", command),
		),
	)
}
