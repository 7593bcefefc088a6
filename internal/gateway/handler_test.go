package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
	"github.com/vibeworks/vibe-orchestrator/internal/command"
	"github.com/vibeworks/vibe-orchestrator/internal/library"
	"github.com/vibeworks/vibe-orchestrator/internal/progress"
	"github.com/vibeworks/vibe-orchestrator/internal/routing"
)

// newHandlerHarness builds the handler with an in-memory service set and a
// middleware that injects an authenticated user, so HTTP semantics can be
// tested without a database or JWT round trip.
func newHandlerHarness(t *testing.T, pool *mockAgentPoolClient) (*gin.Engine, *command.Services) {
	t.Helper()

	budget := routing.NewTokenBudget()
	services := &command.Services{
		AgentPool:      pool,
		Progress:       progress.NewTracker(nil, nil),
		ContextManager: command.NewSessionContext(),
		Router:         routing.NewRouter(budget),
		RoutingMetrics: routing.NewMetrics(),
		TokenBudget:    budget,
		ErrorLog:       routing.NewErrorLog(),
		Components:     library.NewComponentLibrary(),
		Patterns:       library.NewPatternLibrary(),
	}

	registry := command.NewRegistry()
	for _, cmd := range []command.Command{
		command.NewBuildAppCommand(),
		command.NewDeployCommand(),
		command.NewShowProgressCommand(),
		command.NewIntelligenceDashboardCommand(),
		command.NewResetContextCommand(),
	} {
		require.NoError(t, registry.Register(cmd))
	}

	handler := NewHandler(registry, services, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", "test-user")
		c.Next()
	})

	router.GET("/health", handler.Health)
	api := router.Group("/api")
	api.GET("/commands", handler.ListCommands)
	api.POST("/commands/:alias", handler.ExecuteCommand)
	api.GET("/operations", handler.ListOperations)
	api.GET("/operations/:id", handler.GetOperation)
	api.GET("/dashboard", handler.Dashboard)
	api.GET("/library/components", handler.ListComponents)
	api.GET("/library/components/:name", handler.GetComponent)
	api.GET("/library/patterns", handler.ListPatterns)

	return router, services
}

func executeJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_ListCommands(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{})

	w := executeJSON(router, http.MethodGet, "/api/commands", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp["commands"], 5)
	assert.Equal(t, "build-app", resp["commands"][0]["name"])
}

func TestHandler_ExecuteCommand_Build(t *testing.T) {
	pool := &mockAgentPoolClient{
		executeResult: &agentpool.AgentResult{Success: true, Agent: "stub", ExecutionTime: 5},
	}
	router, services := newHandlerHarness(t, pool)

	w := executeJSON(router, http.MethodPost, "/api/commands/build",
		map[string]string{"input": "build me a simple todo app"})
	require.Equal(t, http.StatusOK, w.Code)

	var result command.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, command.StatusSuccess, result.Status)
	assert.Equal(t, "todo-app", result.Data["app_type"])

	completed := services.Progress.CompletedOperations(1)
	require.Len(t, completed, 1)
	assert.Equal(t, 8, completed[0].TotalSteps)
}

func TestHandler_ExecuteCommand_UnknownAlias(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{})

	w := executeJSON(router, http.MethodPost, "/api/commands/no-such-command", map[string]string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "COMMAND_NOT_FOUND")
}

func TestHandler_ExecuteCommand_EmptyVibe(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{})

	w := executeJSON(router, http.MethodPost, "/api/commands/build", map[string]string{"input": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_VIBE")
}

func TestHandler_ExecuteCommand_SpecialistFailure(t *testing.T) {
	pool := &mockAgentPoolClient{
		executeError: errors.New("agent pool timeout"),
	}
	router, _ := newHandlerHarness(t, pool)

	w := executeJSON(router, http.MethodPost, "/api/commands/build",
		map[string]string{"input": "build me a simple todo app"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "SPECIALIST_FAILED")
	assert.Contains(t, w.Body.String(), "project-manager")
}

func TestHandler_ExecuteCommand_MissingDependency(t *testing.T) {
	router, services := newHandlerHarness(t, &mockAgentPoolClient{})
	services.Router = nil

	w := executeJSON(router, http.MethodPost, "/api/commands/build",
		map[string]string{"input": "build a blog"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_DEPENDENCY")
	assert.Contains(t, w.Body.String(), "router")
}

func TestHandler_Operations(t *testing.T) {
	pool := &mockAgentPoolClient{
		executeResult: &agentpool.AgentResult{Success: true, Agent: "stub", ExecutionTime: 5},
	}
	router, _ := newHandlerHarness(t, pool)

	w := executeJSON(router, http.MethodPost, "/api/commands/build",
		map[string]interface{}{"input": "make a simple blog", "operation_id": "op-handler-test"})
	require.Equal(t, http.StatusOK, w.Code)

	w = executeJSON(router, http.MethodGet, "/api/operations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "op-handler-test")

	w = executeJSON(router, http.MethodGet, "/api/operations/op-handler-test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var op progress.Operation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &op))
	assert.Equal(t, "completed", op.Status)
	assert.Equal(t, op.TotalSteps, op.CurrentStep)

	w = executeJSON(router, http.MethodGet, "/api/operations/unknown-op", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Library(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{})

	t.Run("list components", func(t *testing.T) {
		w := executeJSON(router, http.MethodGet, "/api/library/components", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string][]library.Component
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp["components"], 4)
	})

	t.Run("filter by category", func(t *testing.T) {
		w := executeJSON(router, http.MethodGet, "/api/library/components?category=layout", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string][]library.Component
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp["components"], 2)
	})

	t.Run("get component", func(t *testing.T) {
		w := executeJSON(router, http.MethodGet, "/api/library/components/button", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "button")
	})

	t.Run("unknown component", func(t *testing.T) {
		w := executeJSON(router, http.MethodGet, "/api/library/components/carousel", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("pattern recommendations", func(t *testing.T) {
		w := executeJSON(router, http.MethodGet, "/api/library/patterns?context=needs+to+work+on+mobile", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string][]library.Pattern
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp["patterns"], 1)
		assert.Equal(t, "responsive", resp["patterns"][0].Name)
	})
}

func TestHandler_Dashboard(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{})

	w := executeJSON(router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result command.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, command.StatusSuccess, result.Status)
	assert.Contains(t, result.Data, "routing")
	assert.Contains(t, result.Data, "token_budget")
	assert.Contains(t, result.Data, "errors")
}

func TestHandler_Health(t *testing.T) {
	router, _ := newHandlerHarness(t, &mockAgentPoolClient{healthyResponse: true})

	w := executeJSON(router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, true, resp["agent_pool"])
}
