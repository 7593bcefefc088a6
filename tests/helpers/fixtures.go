package helpers

import (
	"encoding/json"
)

// TestVibe represents a free-text app description fixture
type TestVibe struct {
	Input       string `json:"input"`
	AppType     string `json:"app_type"`
	Specialists int    `json:"specialists"`
}

// Vibe fixtures cover the three planning shapes.
var (
	// SimpleTodoVibe plans the minimal four-specialist sequence.
	SimpleTodoVibe = TestVibe{
		Input:       "build me a simple todo app",
		AppType:     "todo-app",
		Specialists: 4,
	}

	// FullStackStoreVibe triggers backend and database specialists.
	FullStackStoreVibe = TestVibe{
		Input:       "build an online store with user login and a database",
		AppType:     "ecommerce",
		Specialists: 6,
	}

	// BlogWithAuthVibe triggers the backend specialist only.
	BlogWithAuthVibe = TestVibe{
		Input:       "create a blog where readers can sign in",
		AppType:     "blog",
		Specialists: 5,
	}
)

// ToJSON converts a fixture to JSON string
func ToJSON(fixture interface{}) string {
	data, _ := json.Marshal(fixture)
	return string(data)
}

// CreateTestLoginRequest creates a login request payload
func CreateTestLoginRequest(email, password string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"password": password,
	}
}

// CreateExecuteCommandRequest creates a command execution request payload
func CreateExecuteCommandRequest(input, operationID string) map[string]interface{} {
	req := map[string]interface{}{
		"input": input,
	}
	if operationID != "" {
		req["operation_id"] = operationID
	}
	return req
}

// MockAgentPoolResult creates a mock agent-pool execution response payload
func MockAgentPoolResult(agentID string, success bool) map[string]interface{} {
	result := map[string]interface{}{
		"success":        success,
		"agent":          agentID,
		"execution_time": 42,
	}
	if success {
		result["result"] = map[string]interface{}{
			"summary": "completed " + agentID + " task",
		}
	} else {
		result["error"] = "agent execution failed"
	}
	return result
}
