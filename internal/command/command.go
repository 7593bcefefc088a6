// Package command implements the alias-triggered command surface of the
// orchestrator. Every command exposes one Execute operation over a typed
// collaborator set; the HTTP gateway dispatches into the registry by alias.
package command

import (
	"context"
	"sync"

	"github.com/vibeworks/vibe-orchestrator/internal/agentpool"
	"github.com/vibeworks/vibe-orchestrator/internal/library"
	"github.com/vibeworks/vibe-orchestrator/internal/progress"
	"github.com/vibeworks/vibe-orchestrator/internal/routing"
)

// Command is a named, alias-triggered unit of behavior. Implementations are
// constructed once at startup and are immutable thereafter; Execute may be
// called repeatedly and concurrently.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Execute(ctx context.Context, userInput string, execCtx *Context, services *Services) (*Result, error)
}

// Context carries per-invocation caller state. A fresh Context per Execute
// call keeps invocations independent.
type Context struct {
	UserID      string
	OperationID string
	Values      map[string]interface{}
}

// ContextManager owns cross-invocation session state and can discard it.
type ContextManager interface {
	Reset()
}

// SessionContext is the default in-memory ContextManager.
type SessionContext struct {
	mu     sync.Mutex
	values map[string]interface{}
}

// NewSessionContext creates an empty session context.
func NewSessionContext() *SessionContext {
	return &SessionContext{values: make(map[string]interface{})}
}

// Set stores a session value.
func (s *SessionContext) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get retrieves a session value.
func (s *SessionContext) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Reset discards all session state.
func (s *SessionContext) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]interface{})
}

// Services is the typed collaborator set handed to every command. Required
// members vary per command and are checked before any side effect; the
// dashboard collaborators (RoutingMetrics, TokenBudget, ErrorLog) are
// optional and commands substitute placeholders when they are nil.
type Services struct {
	AgentPool      agentpool.ClientInterface
	Progress       *progress.Tracker
	ContextManager ContextManager
	Router         *routing.Router
	RoutingMetrics *routing.Metrics
	TokenBudget    *routing.TokenBudget
	ErrorLog       *routing.ErrorLog
	Components     *library.ComponentLibrary
	Patterns       *library.PatternLibrary
}

// require fails fast with a MissingDependencyError for the first absent
// collaborator among the named ones.
func (s *Services) require(deps ...string) error {
	if s == nil {
		return &MissingDependencyError{Dependency: "services"}
	}
	for _, dep := range deps {
		var present bool
		switch dep {
		case "agentPool":
			present = s.AgentPool != nil
		case "progressTracker":
			present = s.Progress != nil
		case "contextManager":
			present = s.ContextManager != nil
		case "router":
			present = s.Router != nil
		default:
			present = false
		}
		if !present {
			return &MissingDependencyError{Dependency: dep}
		}
	}
	return nil
}

// recordError classifies a failure into the error log when one is attached.
func (s *Services) recordError(kind string) {
	if s != nil && s.ErrorLog != nil {
		s.ErrorLog.Record(kind)
	}
}
