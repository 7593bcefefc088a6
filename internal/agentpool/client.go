// Package agentpool is the HTTP/WebSocket client for the external agent-pool
// runtime that executes specialist agents. The orchestrator dispatches one
// specialist at a time and never runs agent logic in-process.
package agentpool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ClientInterface defines the agent-pool operations commands depend on.
type ClientInterface interface {
	ExecuteWithAgent(ctx context.Context, agentID string, cmd AgentCommand) (*AgentResult, error)
	StreamWebSocket(ctx context.Context, operationID string) (*websocket.Conn, error)
	IsHealthy(ctx context.Context) bool
}

// Client handles communication with the agent-pool runtime service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	breaker    *gobreaker.CircuitBreaker
}

// AgentCommand is the unit of work handed to one specialist agent.
type AgentCommand struct {
	Type         string                 `json:"type"`
	Input        string                 `json:"input,omitempty"`
	Requirements []string               `json:"requirements,omitempty"`
	Context      map[string]interface{} `json:"context,omitempty"`
	OperationID  string                 `json:"operation_id,omitempty"`
}

// AgentResult is one specialist's outcome. Agent is the stable identifier
// downstream integration keys on; the client guarantees it is never empty.
type AgentResult struct {
	Success       bool                   `json:"success"`
	Agent         string                 `json:"agent"`
	Result        map[string]interface{} `json:"result,omitempty"`
	ExecutionTime int64                  `json:"execution_time,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

// StreamEvent is a WebSocket event emitted by the agent-pool runtime while
// an operation is in flight.
type StreamEvent struct {
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
}

// NewClient creates an agent-pool client configured from the environment.
func NewClient() *Client {
	baseURL := os.Getenv("AGENT_POOL_URL")
	if baseURL == "" {
		baseURL = "http://agent-pool-service:8000"
		log.Printf("WARN: AGENT_POOL_URL not set, defaulting to %s", baseURL)
	}

	settings := gobreaker.Settings{
		Name:        "agent-pool",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Printf("Circuit breaker %s changed from %s to %s", name, from, to)
		},
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		tracer:  otel.Tracer("agent-pool-client"),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// SetBaseURL sets the base URL for testing purposes.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// ExecuteWithAgent runs one command on the named specialist agent and blocks
// until the agent returns. Callers sequence specialists themselves; the
// client performs a single synchronous round trip.
func (c *Client) ExecuteWithAgent(ctx context.Context, agentID string, cmd AgentCommand) (*AgentResult, error) {
	ctx, span := c.tracer.Start(ctx, "agent_pool.execute_with_agent")
	defer span.End()

	span.SetAttributes(
		attribute.String("agent.id", agentID),
		attribute.String("command.type", cmd.Type),
		attribute.String("operation.id", cmd.OperationID),
	)

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.executeInternal(ctx, agentID, cmd)
	})

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to execute with agent %s: %w", agentID, err)
	}

	agentResult := result.(*AgentResult)
	span.SetAttributes(attribute.Bool("agent.success", agentResult.Success))

	return agentResult, nil
}

// executeInternal performs the actual HTTP request.
func (c *Client) executeInternal(ctx context.Context, agentID string, cmd AgentCommand) (*AgentResult, error) {
	jsonData, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}

	url := fmt.Sprintf("%s/agent-pool/execute/%s", c.baseURL, agentID)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	// Inject trace context
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("agent-pool returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("agent-pool returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result AgentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Integration indexes results by agent id, so it must always be present.
	if result.Agent == "" {
		result.Agent = agentID
	}

	if !result.Success {
		return nil, fmt.Errorf("agent %s reported failure: %s", agentID, result.Error)
	}

	return &result, nil
}

// StreamWebSocket establishes a WebSocket connection streaming the events of
// one operation.
func (c *Client) StreamWebSocket(ctx context.Context, operationID string) (*websocket.Conn, error) {
	ctx, span := c.tracer.Start(ctx, "agent_pool.stream_websocket")
	defer span.End()

	span.SetAttributes(attribute.String("operation.id", operationID))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.streamWebSocketInternal(ctx, operationID)
	})

	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to establish WebSocket connection: %w", err)
	}

	return result.(*websocket.Conn), nil
}

// streamWebSocketInternal performs the actual WebSocket dial.
func (c *Client) streamWebSocketInternal(ctx context.Context, operationID string) (*websocket.Conn, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}

	u.Path = fmt.Sprintf("/agent-pool/stream/%s", operationID)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	headers := http.Header{}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(headers))

	conn, resp, err := dialer.DialContext(ctx, u.String(), headers)
	if err != nil {
		if resp != nil {
			bodyBytes, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("failed to dial WebSocket (status %d): %s, error: %w", resp.StatusCode, string(bodyBytes), err)
		}
		return nil, fmt.Errorf("failed to dial WebSocket: %w", err)
	}

	return conn, nil
}

// IsHealthy checks if the agent-pool runtime is reachable and healthy.
func (c *Client) IsHealthy(ctx context.Context) bool {
	ctx, span := c.tracer.Start(ctx, "agent_pool.health_check")
	defer span.End()

	// An open circuit breaker is a quick negative signal.
	if c.breaker.State() == gobreaker.StateOpen {
		span.SetAttributes(attribute.Bool("healthy", false), attribute.String("reason", "circuit_breaker_open"))
		return false
	}

	url := fmt.Sprintf("%s/health", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		span.RecordError(err)
		return false
	}

	// Short timeout for health checks
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return false
	}
	defer resp.Body.Close()

	healthy := resp.StatusCode == http.StatusOK
	span.SetAttributes(attribute.Bool("healthy", healthy))

	return healthy
}
